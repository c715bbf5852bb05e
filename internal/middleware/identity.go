package middleware

// identity.go defines the authenticated identity value that JWTAuth attaches
// to the request context and the helper handlers use to read it back. The
// identity is an explicit value threaded into service calls rather than a
// bag of loose context keys.

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// identityKey is the context key under which JWTAuth stores the Identity.
const identityKey = "identity"

// Identity is the decoded caller extracted from a verified access token.
type Identity struct {
	ID   uint64
	Role string
}

// ErrNoIdentity is returned by CurrentIdentity when the request was not
// authenticated. Routes behind JWTAuth should never see it.
var ErrNoIdentity = errors.New("no authenticated identity in context")

// CurrentIdentity returns the Identity stored by JWTAuth.
func CurrentIdentity(c echo.Context) (Identity, error) {
	id, ok := c.Get(identityKey).(Identity)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}
