// This file defines the Author model and repository methods for CRUD and
// lookup operations. An Author is a simple named entity that books
// reference by id.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Author represents an author entity persisted in the database.
type Author struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"-"` // timestamps are not exposed in API responses
	UpdatedAt string `json:"-"`
}

// AuthorRepo encapsulates all database queries related to authors.
type AuthorRepo struct {
	db *sql.DB
}

// NewAuthorRepo constructs an AuthorRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewAuthorRepo(db *sql.DB) *AuthorRepo {
	return &AuthorRepo{db: db}
}

// Create inserts a new author. On success the ID field is populated with
// the auto-generated value.
func (r *AuthorRepo) Create(ctx context.Context, a *Author) error {
	const q = "INSERT INTO authors (name) VALUES (?)"
	res, err := r.db.ExecContext(ctx, q, a.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID fetches an author by its ID. It returns ErrNotFound if no row
// exists.
func (r *AuthorRepo) GetByID(ctx context.Context, id uint64) (*Author, error) {
	const q = "SELECT id, name FROM authors WHERE id = ?"
	var a Author
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all authors ordered by id.
func (r *AuthorRepo) List(ctx context.Context) ([]*Author, error) {
	const q = "SELECT id, name FROM authors ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Author
	for rows.Next() {
		a := new(Author)
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateName updates the author's name. It returns ErrNotFound when no row
// is affected.
func (r *AuthorRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	const q = "UPDATE authors SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, name, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an author by id. It returns ErrNotFound when no row is
// affected.
func (r *AuthorRepo) Delete(ctx context.Context, id uint64) error {
	const q = "DELETE FROM authors WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
