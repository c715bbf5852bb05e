package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-catalog-api/internal/handler"
	"github.com/iliyamo/book-catalog-api/internal/middleware"
	"github.com/iliyamo/book-catalog-api/internal/utils"
)

// RegisterReviews registers review endpoints nested under books. Reads are
// public; writes require any authenticated user. Any role may write a
// review, but updates and deletes are further restricted to the review's
// author inside the handler.
func RegisterReviews(e *echo.Echo, h *handler.ReviewHandler, issuer *utils.TokenIssuer) {
	pub := e.Group("/v1/books/:bookId/reviews")
	pub.GET("", h.ListReviews)
	pub.GET("/:id", h.GetReview)

	auth := e.Group("/v1/books/:bookId/reviews", middleware.JWTAuth(issuer))
	auth.POST("", h.CreateReview)
	auth.PATCH("/:id", h.UpdateReview)
	auth.DELETE("/:id", h.DeleteReview)
}
