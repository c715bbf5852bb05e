package handler // genre endpoints of the catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-catalog-api/internal/repository"
)

// ListGenres handles GET /v1/genres.
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	items, err := h.Genres.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetGenre handles GET /v1/genres/:id.
func (h *CatalogHandler) GetGenre(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	g, err := h.Genres.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, g)
}

// CreateGenre handles POST /v1/genres (admin).
func (h *CatalogHandler) CreateGenre(c echo.Context) error {
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
	g := &repository.Genre{Name: name}
	if err := h.Genres.Create(c.Request().Context(), g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create genre"})
	}
	return c.JSON(http.StatusCreated, g)
}

// UpdateGenre handles PATCH /v1/genres/:id (admin). An empty name keeps the
// current one.
func (h *CatalogHandler) UpdateGenre(c echo.Context) error {
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
	current, err := h.Genres.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = current.Name
	}
	if err := h.Genres.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, &repository.Genre{ID: id, Name: name})
}

// DeleteGenre handles DELETE /v1/genres/:id (admin).
func (h *CatalogHandler) DeleteGenre(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Genres.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
