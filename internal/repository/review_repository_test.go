package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepoGetByIDScopedToBook(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Review 9 belongs to book 2; asking through book 5 must miss.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, book_id, user_id, rating, comment FROM reviews WHERE id = ? AND book_id = ?")).
		WithArgs(uint64(9), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "book_id", "user_id", "rating", "comment"}))

	repo := NewReviewRepo(db)
	_, err = repo.GetByID(context.Background(), 5, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews (book_id, user_id, rating, comment) VALUES (?, ?, ?, ?)")).
		WithArgs(uint64(2), uint64(1), 5, "great read").
		WillReturnResult(sqlmock.NewResult(11, 1))

	repo := NewReviewRepo(db)
	rv := &Review{BookID: 2, UserID: 1, Rating: 5, Comment: "great read"}
	require.NoError(t, repo.Create(context.Background(), rv))
	assert.Equal(t, uint64(11), rv.ID)
}

func TestReviewRepoDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE id = ? AND book_id = ?")).
		WithArgs(uint64(99), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewReviewRepo(db)
	assert.ErrorIs(t, repo.Delete(context.Background(), 2, 99), ErrNotFound)
}
