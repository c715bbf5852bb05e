package handler // review endpoints, nested under books

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-catalog-api/internal/middleware"
	"github.com/iliyamo/book-catalog-api/internal/queue"
	"github.com/iliyamo/book-catalog-api/internal/repository"
)

// ReviewHandler bundles dependencies for review endpoints. Publish emits a
// review.created event after a successful create; it is a field so tests
// can stub the broker out.
type ReviewHandler struct {
	Books   *repository.BookRepo
	Reviews *repository.ReviewRepo
	Publish func(ctx context.Context, ev queue.ReviewCreatedEvent) error
}

func NewReviewHandler(books *repository.BookRepo, reviews *repository.ReviewRepo, publish func(ctx context.Context, ev queue.ReviewCreatedEvent) error) *ReviewHandler {
	if books == nil || reviews == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Books: books, Reviews: reviews, Publish: publish}
}

// reviewReq is the write payload for reviews. Rating is a pointer so PATCH
// can distinguish "absent" from zero.
type reviewReq struct {
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

// requireBook loads the book for the :bookId path param. It returns the
// book id, or writes the error response and returns ok=false.
func (h *ReviewHandler) requireBook(ctx context.Context, c echo.Context) (uint64, bool) {
	bookID, ok := parseID(c, "bookId")
	if !ok {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
		return 0, false
	}
	if _, err := h.Books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return 0, false
	}
	return bookID, true
}

// ListReviews handles GET /v1/books/:bookId/reviews.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()
	bookID, ok := h.requireBook(ctx, c)
	if !ok {
		return nil
	}
	items, err := h.Reviews.ListByBook(ctx, bookID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetReview handles GET /v1/books/:bookId/reviews/:id.
func (h *ReviewHandler) GetReview(c echo.Context) error {
	ctx := c.Request().Context()
	bookID, ok := h.requireBook(ctx, c)
	if !ok {
		return nil
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rv, err := h.Reviews.GetByID(ctx, bookID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, rv)
}

// CreateReview handles POST /v1/books/:bookId/reviews (bearer). The review
// is owned by the caller.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	bookID, ok := h.requireBook(ctx, c)
	if !ok {
		return nil
	}
	var body reviewReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Rating == nil || *body.Rating < 1 || *body.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	comment := strings.TrimSpace(body.Comment)
	if comment == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment is required"})
	}

	rv := &repository.Review{BookID: bookID, UserID: ident.ID, Rating: *body.Rating, Comment: comment}
	if err := h.Reviews.Create(ctx, rv); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create review"})
	}

	if h.Publish != nil {
		// Fire and forget; a broker outage must not fail the request.
		ev := queue.ReviewCreatedEvent{
			ReviewID:  rv.ID,
			BookID:    rv.BookID,
			UserID:    rv.UserID,
			Rating:    rv.Rating,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.Publish(pubCtx, ev); err != nil {
				log.Printf("review-event: publish failed: %v", err)
			}
		}()
	}

	return c.JSON(http.StatusCreated, rv)
}

// UpdateReview handles PATCH /v1/books/:bookId/reviews/:id (bearer). Only
// the user who wrote the review may change it; at least one field must be
// provided, and unset fields keep their current values.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	bookID, ok := h.requireBook(ctx, c)
	if !ok {
		return nil
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body reviewReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	comment := strings.TrimSpace(body.Comment)
	if body.Rating == nil && comment == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide at least one field to update"})
	}
	if body.Rating != nil && (*body.Rating < 1 || *body.Rating > 5) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	rv, err := h.Reviews.GetByID(ctx, bookID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if rv.UserID != ident.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you are not allowed to update this review"})
	}

	if body.Rating != nil {
		rv.Rating = *body.Rating
	}
	if comment != "" {
		rv.Comment = comment
	}
	if err := h.Reviews.Update(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, rv)
}

// DeleteReview handles DELETE /v1/books/:bookId/reviews/:id (bearer). Only
// the user who wrote the review may delete it.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	bookID, ok := h.requireBook(ctx, c)
	if !ok {
		return nil
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	rv, err := h.Reviews.GetByID(ctx, bookID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if rv.UserID != ident.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you are not allowed to delete this review"})
	}

	if err := h.Reviews.Delete(ctx, bookID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
