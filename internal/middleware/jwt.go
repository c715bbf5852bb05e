package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-catalog-api/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the decoded Identity in the request context. The issuer must
// be the same one used when signing tokens. This middleware wraps protected
// routes so that handlers can read the caller via CurrentIdentity(c).
func JWTAuth(issuer *utils.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// VerifyAccess checks signature, expiry and claim shape against
			// the access-token secret; refresh tokens fail here because they
			// are signed with a different secret.
			claims, err := issuer.VerifyAccess(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(identityKey, Identity{ID: claims.UserID, Role: claims.Role})
			return next(c)
		}
	}
}
