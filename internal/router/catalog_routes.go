package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-catalog-api/internal/handler"
	"github.com/iliyamo/book-catalog-api/internal/middleware"
	"github.com/iliyamo/book-catalog-api/internal/utils"
)

// RegisterCatalog registers the catalog endpoints under /v1. Reads are
// public (optionally behind the Redis response cache); writes require a
// valid JWT with the ADMIN role. This file is the role declaration table:
// which route needs which role is decided here, not in handlers.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, issuer *utils.TokenIssuer, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1")
	if cache != nil {
		pub.Use(cache)
	}
	pub.GET("/authors", h.ListAuthors)
	pub.GET("/authors/:id", h.GetAuthor)
	pub.GET("/genres", h.ListGenres)
	pub.GET("/genres/:id", h.GetGenre)
	pub.GET("/books", h.ListBooks)
	pub.GET("/books/:id", h.GetBook)

	admin := e.Group(
		"/v1",
		middleware.JWTAuth(issuer),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Authors ----
	admin.POST("/authors", h.CreateAuthor)
	admin.PATCH("/authors/:id", h.UpdateAuthor)
	admin.DELETE("/authors/:id", h.DeleteAuthor)

	// ---- Genres ----
	admin.POST("/genres", h.CreateGenre)
	admin.PATCH("/genres/:id", h.UpdateGenre)
	admin.DELETE("/genres/:id", h.DeleteGenre)

	// ---- Books ----
	admin.POST("/books", h.CreateBook)
	admin.PATCH("/books/:id", h.UpdateBook)
	admin.DELETE("/books/:id", h.DeleteBook)
}
