package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-catalog-api/internal/handler"
	"github.com/iliyamo/book-catalog-api/internal/middleware"
	"github.com/iliyamo/book-catalog-api/internal/utils"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints and the current-user
// endpoint. Sign-up, sign-in and refresh are open; /v1/users/me requires a
// valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, issuer *utils.TokenIssuer) {
	g := e.Group("/v1/auth")
	g.POST("/sign-up", a.SignUp)
	g.POST("/sign-in", a.SignIn)
	g.POST("/refresh-token", a.Refresh)

	me := e.Group("/v1/users", middleware.JWTAuth(issuer))
	me.GET("/me", u.Me)
}
