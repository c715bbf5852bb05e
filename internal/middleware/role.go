package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware function that enforces that the
// authenticated caller has one of the specified roles. Roles compare
// case-insensitively against the token's role claim. If the caller's role
// is not in the allowed set the request is aborted with 403 Forbidden. It
// must be chained after JWTAuth, which attaches the Identity it reads.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	// Build a set of allowed roles, upper-cased once at registration time.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToUpper(r)] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, err := CurrentIdentity(c)
			if err != nil || !allowed[strings.ToUpper(ident.Role)] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
