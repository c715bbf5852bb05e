package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/book-catalog-api/internal/middleware"
	"github.com/iliyamo/book-catalog-api/internal/queue"
	"github.com/iliyamo/book-catalog-api/internal/repository"
	"github.com/iliyamo/book-catalog-api/internal/utils"
)

func newReviewTest(t *testing.T, publish func(context.Context, queue.ReviewCreatedEvent) error) (*ReviewHandler, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewReviewHandler(repository.NewBookRepo(db), repository.NewReviewRepo(db), publish)
	return h, mock, db
}

// callWithAuth runs a review handler behind the real JWTAuth middleware so
// the identity comes from a verified token, exactly as in production.
func callWithAuth(t *testing.T, issuer *utils.TokenIssuer, token string, fn echo.HandlerFunc, req *http.Request, params map[string]string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	require.NoError(t, middleware.JWTAuth(issuer)(fn)(c))
	return rec
}

func expectBook(mock sqlmock.Sqlmock, id uint64, found bool) {
	rows := sqlmock.NewRows([]string{"id", "title", "author_id", "genre_id"})
	if found {
		rows.AddRow(id, "Lalka", 2, 3)
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, author_id, genre_id FROM books WHERE id = ?")).
		WithArgs(id).
		WillReturnRows(rows)
}

func expectReview(mock sqlmock.Sqlmock, bookID, id, userID uint64) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, book_id, user_id, rating, comment FROM reviews WHERE id = ? AND book_id = ?")).
		WithArgs(id, bookID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "book_id", "user_id", "rating", "comment"}).
			AddRow(id, bookID, userID, 4, "solid"))
}

func TestCreateReviewPublishesEvent(t *testing.T) {
	published := make(chan queue.ReviewCreatedEvent, 1)
	h, mock, db := newReviewTest(t, func(_ context.Context, ev queue.ReviewCreatedEvent) error {
		published <- ev
		return nil
	})
	defer db.Close()

	expectBook(mock, 2, true)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews")).
		WithArgs(uint64(2), uint64(1), 5, "great read").
		WillReturnResult(sqlmock.NewResult(11, 1))

	issuer := testIssuer()
	pair, err := issuer.IssuePair(1, "USER")
	require.NoError(t, err)

	rec := callWithAuth(t, issuer, pair.AccessToken, h.CreateReview,
		jsonRequest(http.MethodPost, "/v1/books/2/reviews", `{"rating":5,"comment":"great read"}`),
		map[string]string{"bookId": "2"})

	require.Equal(t, http.StatusCreated, rec.Code)
	select {
	case ev := <-published:
		assert.Equal(t, uint64(11), ev.ReviewID)
		assert.Equal(t, uint64(2), ev.BookID)
		assert.Equal(t, uint64(1), ev.UserID)
		assert.Equal(t, 5, ev.Rating)
	case <-time.After(2 * time.Second):
		t.Fatal("review.created event was not published")
	}
}

func TestCreateReviewMissingBook(t *testing.T) {
	h, mock, db := newReviewTest(t, nil)
	defer db.Close()

	expectBook(mock, 99, false)

	issuer := testIssuer()
	pair, err := issuer.IssuePair(1, "USER")
	require.NoError(t, err)

	rec := callWithAuth(t, issuer, pair.AccessToken, h.CreateReview,
		jsonRequest(http.MethodPost, "/v1/books/99/reviews", `{"rating":5,"comment":"great read"}`),
		map[string]string{"bookId": "99"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReviewInvalidRating(t *testing.T) {
	h, mock, db := newReviewTest(t, nil)
	defer db.Close()

	expectBook(mock, 2, true)

	issuer := testIssuer()
	pair, err := issuer.IssuePair(1, "USER")
	require.NoError(t, err)

	rec := callWithAuth(t, issuer, pair.AccessToken, h.CreateReview,
		jsonRequest(http.MethodPost, "/v1/books/2/reviews", `{"rating":6,"comment":"too good"}`),
		map[string]string{"bookId": "2"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReviewRequiresToken(t *testing.T) {
	h, _, db := newReviewTest(t, nil)
	defer db.Close()

	rec := callWithAuth(t, testIssuer(), "", h.CreateReview,
		jsonRequest(http.MethodPost, "/v1/books/2/reviews", `{"rating":5,"comment":"great read"}`),
		map[string]string{"bookId": "2"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateReviewByOwner(t *testing.T) {
	h, mock, db := newReviewTest(t, nil)
	defer db.Close()

	expectBook(mock, 2, true)
	expectReview(mock, 2, 9, 1)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reviews")).
		WithArgs(2, "solid", uint64(9), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	issuer := testIssuer()
	pair, err := issuer.IssuePair(1, "USER")
	require.NoError(t, err)

	rec := callWithAuth(t, issuer, pair.AccessToken, h.UpdateReview,
		jsonRequest(http.MethodPatch, "/v1/books/2/reviews/9", `{"rating":2}`),
		map[string]string{"bookId": "2", "id": "9"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateReviewByStrangerForbidden(t *testing.T) {
	h, mock, db := newReviewTest(t, nil)
	defer db.Close()

	expectBook(mock, 2, true)
	expectReview(mock, 2, 9, 1) // owned by user 1

	issuer := testIssuer()
	pair, err := issuer.IssuePair(2, "USER") // caller is user 2
	require.NoError(t, err)

	rec := callWithAuth(t, issuer, pair.AccessToken, h.UpdateReview,
		jsonRequest(http.MethodPatch, "/v1/books/2/reviews/9", `{"rating":1}`),
		map[string]string{"bookId": "2", "id": "9"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateReviewNoFields(t *testing.T) {
	h, mock, db := newReviewTest(t, nil)
	defer db.Close()

	expectBook(mock, 2, true)

	issuer := testIssuer()
	pair, err := issuer.IssuePair(1, "USER")
	require.NoError(t, err)

	rec := callWithAuth(t, issuer, pair.AccessToken, h.UpdateReview,
		jsonRequest(http.MethodPatch, "/v1/books/2/reviews/9", `{}`),
		map[string]string{"bookId": "2", "id": "9"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteReviewByStrangerForbidden(t *testing.T) {
	h, mock, db := newReviewTest(t, nil)
	defer db.Close()

	expectBook(mock, 2, true)
	expectReview(mock, 2, 9, 1)

	issuer := testIssuer()
	pair, err := issuer.IssuePair(2, "USER")
	require.NoError(t, err)

	rec := callWithAuth(t, issuer, pair.AccessToken, h.DeleteReview,
		httptest.NewRequest(http.MethodDelete, "/v1/books/2/reviews/9", nil),
		map[string]string{"bookId": "2", "id": "9"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteReviewByOwner(t *testing.T) {
	h, mock, db := newReviewTest(t, nil)
	defer db.Close()

	expectBook(mock, 2, true)
	expectReview(mock, 2, 9, 1)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE id = ? AND book_id = ?")).
		WithArgs(uint64(9), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	issuer := testIssuer()
	pair, err := issuer.IssuePair(1, "USER")
	require.NoError(t, err)

	rec := callWithAuth(t, issuer, pair.AccessToken, h.DeleteReview,
		httptest.NewRequest(http.MethodDelete, "/v1/books/2/reviews/9", nil),
		map[string]string{"bookId": "2", "id": "9"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
