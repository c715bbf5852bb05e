package handler // author endpoints of the catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-catalog-api/internal/repository"
)

// ListAuthors handles GET /v1/authors.
func (h *CatalogHandler) ListAuthors(c echo.Context) error {
	items, err := h.Authors.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetAuthor handles GET /v1/authors/:id.
func (h *CatalogHandler) GetAuthor(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Authors.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "author not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, a)
}

// CreateAuthor handles POST /v1/authors (admin).
func (h *CatalogHandler) CreateAuthor(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	a := &repository.Author{Name: name}
	if err := h.Authors.Create(c.Request().Context(), a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create author"})
	}
	return c.JSON(http.StatusCreated, a)
}

// UpdateAuthor handles PATCH /v1/authors/:id (admin). An empty name keeps
// the current one.
func (h *CatalogHandler) UpdateAuthor(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	current, err := h.Authors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "author not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = current.Name
	}
	if err := h.Authors.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "author not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, &repository.Author{ID: id, Name: name})
}

// DeleteAuthor handles DELETE /v1/authors/:id (admin).
func (h *CatalogHandler) DeleteAuthor(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Authors.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "author not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
