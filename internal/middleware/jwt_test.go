package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/book-catalog-api/internal/utils"
)

func testIssuer() *utils.TokenIssuer {
	return utils.NewTokenIssuer(
		"access-secret-at-least-32-chars-long!!", 15*time.Minute,
		"refresh-secret-at-least-32-chars-long!", 168*time.Hour,
	)
}

// echoHandler returns the identity it sees so tests can assert on it.
func echoHandler(t *testing.T, want Identity) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := CurrentIdentity(c)
		require.NoError(t, err)
		assert.Equal(t, want, ident)
		return c.NoContent(http.StatusOK)
	}
}

func TestJWTAuthMissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testIssuer())(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testIssuer())(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	issuer := testIssuer()
	pair, err := issuer.IssuePair(5, "USER")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(issuer)(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenAttachesIdentity(t *testing.T) {
	issuer := testIssuer()
	pair, err := issuer.IssuePair(5, "ADMIN")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(issuer)(echoHandler(t, Identity{ID: 5, Role: "ADMIN"}))
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCurrentIdentityWithoutAuth(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := CurrentIdentity(c)
	assert.ErrorIs(t, err, ErrNoIdentity)
}
