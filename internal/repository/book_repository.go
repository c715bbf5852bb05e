// This file defines the Book model and repository methods. A book carries a
// title and references exactly one author and one genre by id; the handler
// layer verifies both references exist before writing.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Book represents a book entity persisted in the database.
type Book struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	AuthorID  uint64 `json:"authorId"`
	GenreID   uint64 `json:"genreId"`
	CreatedAt string `json:"-"`
	UpdatedAt string `json:"-"`
}

// BookRepo encapsulates all database queries related to books.
type BookRepo struct {
	db *sql.DB
}

// NewBookRepo constructs a BookRepo with the provided DB handle.
func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{db: db}
}

// Create inserts a new book and populates its ID on success.
func (r *BookRepo) Create(ctx context.Context, b *Book) error {
	const q = "INSERT INTO books (title, author_id, genre_id) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, b.Title, b.AuthorID, b.GenreID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID fetches a book by id, returning ErrNotFound if absent.
func (r *BookRepo) GetByID(ctx context.Context, id uint64) (*Book, error) {
	const q = "SELECT id, title, author_id, genre_id FROM books WHERE id = ?"
	var b Book
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Title, &b.AuthorID, &b.GenreID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns all books ordered by id.
func (r *BookRepo) List(ctx context.Context) ([]*Book, error) {
	const q = "SELECT id, title, author_id, genre_id FROM books ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Book
	for rows.Next() {
		b := new(Book)
		if err := rows.Scan(&b.ID, &b.Title, &b.AuthorID, &b.GenreID); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the full set of mutable columns. Callers merge unset DTO
// fields with the current row before calling, so a partial PATCH never
// clobbers data. Returns ErrNotFound when no row matches.
func (r *BookRepo) Update(ctx context.Context, b *Book) error {
	const q = `UPDATE books
	           SET title = ?, author_id = ?, genre_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, b.Title, b.AuthorID, b.GenreID, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a book by id, returning ErrNotFound when no row is
// affected.
func (r *BookRepo) Delete(ctx context.Context, id uint64) error {
	const q = "DELETE FROM books WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
