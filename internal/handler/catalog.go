package handler

import (
	"github.com/iliyamo/book-catalog-api/internal/repository"
)

// CatalogHandler bundles repositories for the catalog entities (authors,
// genres, books). Read endpoints are public; write endpoints sit behind the
// admin role in the router.
type CatalogHandler struct {
	Authors *repository.AuthorRepo
	Genres  *repository.GenreRepo
	Books   *repository.BookRepo
}

// NewCatalogHandler constructs a CatalogHandler and panics if any dependency
// is nil.
func NewCatalogHandler(authors *repository.AuthorRepo, genres *repository.GenreRepo, books *repository.BookRepo) *CatalogHandler {
	if authors == nil || genres == nil || books == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Authors: authors, Genres: genres, Books: books}
}
