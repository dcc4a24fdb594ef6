package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/service"
	customError "github.com/segyhp/shelfmark/pkg/errors"
	"github.com/segyhp/shelfmark/pkg/response"
)

// CatalogClient looks books up in the external catalog.
type CatalogClient interface {
	Search(ctx context.Context, q string) ([]domain.BookSummary, error)
	Work(ctx context.Context, catalogItemID string) (*domain.BookDetails, error)
}

type BooksHandler struct {
	catalog CatalogClient
	borrows *service.BorrowService
	logger  *slog.Logger
}

func NewBooksHandler(catalog CatalogClient, borrows *service.BorrowService, logger *slog.Logger) *BooksHandler {
	return &BooksHandler{catalog: catalog, borrows: borrows, logger: logger}
}

// Search handles GET /api/books/search?q=
func (h *BooksHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, h.logger, customError.WrapInvalidArgument("query parameter q is required"))
		return
	}

	books, err := h.catalog.Search(r.Context(), q)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, books)
}

// Show handles GET /api/books/{id} and GET /api/books/works/{id}
func (h *BooksHandler) Show(w http.ResponseWriter, r *http.Request) {
	catalogItemID, err := domain.NormalizeCatalogItemID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	book, err := h.catalog.Work(r.Context(), catalogItemID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	available, err := h.borrows.IsAvailable(r.Context(), catalogItemID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	book.IsAvailable = available

	response.Success(w, book)
}
