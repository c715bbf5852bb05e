// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios. For example,
// ErrNotFound indicates that a requested row does not exist, while
// ErrEmailExists signals that a user creation collided with the unique
// email index.
package repository

import "errors"

// ErrNotFound is returned when a requested entity does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when inserting a user whose email address is
// already registered. Handlers should translate this into an HTTP 409
// response.
var ErrEmailExists = errors.New("email already exists")
