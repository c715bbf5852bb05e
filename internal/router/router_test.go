package router

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/book-catalog-api/internal/handler"
	"github.com/iliyamo/book-catalog-api/internal/repository"
	"github.com/iliyamo/book-catalog-api/internal/utils"
)

func testIssuer() *utils.TokenIssuer {
	return utils.NewTokenIssuer(
		"access-secret-at-least-32-chars-long!!", 15*time.Minute,
		"refresh-secret-at-least-32-chars-long!", 168*time.Hour,
	)
}

// newCatalogServer wires the real route table with the real guards; only
// the database is mocked.
func newCatalogServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock, *utils.TokenIssuer) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := handler.NewCatalogHandler(
		repository.NewAuthorRepo(db),
		repository.NewGenreRepo(db),
		repository.NewBookRepo(db),
	)
	issuer := testIssuer()
	e := echo.New()
	RegisterRoutes(e)
	RegisterCatalog(e, h, issuer, nil)
	return e, mock, issuer
}

func TestHealthz(t *testing.T) {
	e, _, _ := newCatalogServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAdminWriteGating(t *testing.T) {
	e, mock, issuer := newCatalogServer(t)

	adminPair, err := issuer.IssuePair(1, "ADMIN")
	require.NoError(t, err)
	userPair, err := issuer.IssuePair(2, "USER")
	require.NoError(t, err)

	// Only the admin request reaches the database.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO authors (name) VALUES (?)")).
		WithArgs("Jan Kowalski").
		WillReturnResult(sqlmock.NewResult(1, 1))

	post := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/authors", strings.NewReader(`{"name":"Jan Kowalski"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, post("").Code)
	assert.Equal(t, http.StatusForbidden, post(userPair.AccessToken).Code)

	rec := post(adminPair.AccessToken)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Jan Kowalski"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicReadNeedsNoToken(t *testing.T) {
	e, mock, _ := newCatalogServer(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM authors ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Jan Kowalski"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/authors", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jan Kowalski")
}
