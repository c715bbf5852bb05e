// This file defines the Review model and repository methods. A review is
// owned by the user who wrote it (user_id) and attached to one book. The
// ownership column drives the update/delete permission check in the review
// handler.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Review represents a book review persisted in the database.
type Review struct {
	ID        uint64 `json:"id"`
	BookID    uint64 `json:"bookId"`
	UserID    uint64 `json:"userId"` // the reviewer, not the book's author
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"-"`
	UpdatedAt string `json:"-"`
}

// ReviewRepo encapsulates all database queries related to reviews.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the provided DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create inserts a new review and populates its ID on success.
func (r *ReviewRepo) Create(ctx context.Context, rv *Review) error {
	const q = "INSERT INTO reviews (book_id, user_id, rating, comment) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, rv.BookID, rv.UserID, rv.Rating, rv.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// GetByID fetches a review by id scoped to a book, returning ErrNotFound if
// absent. Scoping by book keeps /books/:bookId/reviews/:id from leaking
// reviews across books.
func (r *ReviewRepo) GetByID(ctx context.Context, bookID, id uint64) (*Review, error) {
	const q = "SELECT id, book_id, user_id, rating, comment FROM reviews WHERE id = ? AND book_id = ?"
	var rv Review
	if err := r.db.QueryRowContext(ctx, q, id, bookID).Scan(&rv.ID, &rv.BookID, &rv.UserID, &rv.Rating, &rv.Comment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// ListByBook returns all reviews for a book ordered by id.
func (r *ReviewRepo) ListByBook(ctx context.Context, bookID uint64) ([]*Review, error) {
	const q = "SELECT id, book_id, user_id, rating, comment FROM reviews WHERE book_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Review
	for rows.Next() {
		rv := new(Review)
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.UserID, &rv.Rating, &rv.Comment); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes rating and comment. Callers merge unset DTO fields with the
// current row first. Returns ErrNotFound when no row matches.
func (r *ReviewRepo) Update(ctx context.Context, rv *Review) error {
	const q = `UPDATE reviews
	           SET rating = ?, comment = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND book_id = ?`
	res, err := r.db.ExecContext(ctx, q, rv.Rating, rv.Comment, rv.ID, rv.BookID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a review scoped to a book, returning ErrNotFound when no
// row is affected.
func (r *ReviewRepo) Delete(ctx context.Context, bookID, id uint64) error {
	const q = "DELETE FROM reviews WHERE id = ? AND book_id = ?"
	res, err := r.db.ExecContext(ctx, q, id, bookID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
