// This file defines the Genre model and repository methods. Genres mirror
// authors structurally: a named row that books reference by id.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Genre represents a book genre persisted in the database.
type Genre struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"-"`
	UpdatedAt string `json:"-"`
}

// GenreRepo encapsulates all database queries related to genres.
type GenreRepo struct {
	db *sql.DB
}

// NewGenreRepo constructs a GenreRepo with the provided DB handle.
func NewGenreRepo(db *sql.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// Create inserts a new genre and populates its ID on success.
func (r *GenreRepo) Create(ctx context.Context, g *Genre) error {
	const q = "INSERT INTO genres (name) VALUES (?)"
	res, err := r.db.ExecContext(ctx, q, g.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID fetches a genre by id, returning ErrNotFound if absent.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (*Genre, error) {
	const q = "SELECT id, name FROM genres WHERE id = ?"
	var g Genre
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// List returns all genres ordered by id.
func (r *GenreRepo) List(ctx context.Context) ([]*Genre, error) {
	const q = "SELECT id, name FROM genres ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Genre
	for rows.Next() {
		g := new(Genre)
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateName updates the genre's name, returning ErrNotFound when no row is
// affected.
func (r *GenreRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	const q = "UPDATE genres SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, name, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a genre by id, returning ErrNotFound when no row is
// affected.
func (r *GenreRepo) Delete(ctx context.Context, id uint64) error {
	const q = "DELETE FROM genres WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
