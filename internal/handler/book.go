package handler // book endpoints of the catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-catalog-api/internal/repository"
)

// bookReq is the write payload for books. Author and genre are referenced
// by id; both pointers so PATCH can distinguish "absent" from zero.
type bookReq struct {
	Title    string  `json:"title"`
	AuthorID *uint64 `json:"authorId"`
	GenreID  *uint64 `json:"genreId"`
}

// resolveRefs verifies the referenced author and genre exist. It returns a
// client-facing message for missing references, or an empty string on
// success.
func (h *CatalogHandler) resolveRefs(ctx context.Context, authorID, genreID uint64) (string, error) {
	if _, err := h.Authors.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "author not found", nil
		}
		return "", err
	}
	if _, err := h.Genres.GetByID(ctx, genreID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "genre not found", nil
		}
		return "", err
	}
	return "", nil
}

// ListBooks handles GET /v1/books.
func (h *CatalogHandler) ListBooks(c echo.Context) error {
	items, err := h.Books.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBook handles GET /v1/books/:id.
func (h *CatalogHandler) GetBook(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.Books.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, b)
}

// CreateBook handles POST /v1/books (admin). The referenced author and
// genre must exist.
func (h *CatalogHandler) CreateBook(c echo.Context) error {
	var body bookReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if body.AuthorID == nil || body.GenreID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "authorId/genreId required"})
	}

	ctx := c.Request().Context()
	if msg, err := h.resolveRefs(ctx, *body.AuthorID, *body.GenreID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	} else if msg != "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg})
	}

	b := &repository.Book{Title: title, AuthorID: *body.AuthorID, GenreID: *body.GenreID}
	if err := h.Books.Create(ctx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create book"})
	}
	return c.JSON(http.StatusCreated, b)
}

// UpdateBook handles PATCH /v1/books/:id (admin). Unset fields keep their
// current values; changed references are re-verified.
func (h *CatalogHandler) UpdateBook(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body bookReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	current, err := h.Books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	updated := *current
	if t := strings.TrimSpace(body.Title); t != "" {
		updated.Title = t
	}
	if body.AuthorID != nil {
		updated.AuthorID = *body.AuthorID
	}
	if body.GenreID != nil {
		updated.GenreID = *body.GenreID
	}
	if msg, err := h.resolveRefs(ctx, updated.AuthorID, updated.GenreID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	} else if msg != "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg})
	}

	if err := h.Books.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, &updated)
}

// DeleteBook handles DELETE /v1/books/:id (admin).
func (h *CatalogHandler) DeleteBook(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Books.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
