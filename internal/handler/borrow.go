package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/notifier"
	"github.com/segyhp/shelfmark/internal/service"
	"github.com/segyhp/shelfmark/pkg/response"
)

type BorrowHandler struct {
	service   *service.BorrowService
	notifier  notifier.Notifier
	validator *validator.Validate
	logger    *slog.Logger
}

func NewBorrowHandler(service *service.BorrowService, sink notifier.Notifier, logger *slog.Logger) *BorrowHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = notifier.NewLogNotifier(logger)
	}
	return &BorrowHandler{
		service:   service,
		notifier:  sink,
		validator: validator.New(),
		logger:    logger,
	}
}

// CreateBorrow handles POST /api/borrows
func (h *BorrowHandler) CreateBorrow(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	var request domain.CreateBorrowRequest
	if err := decodeJSON(r, h.validator, &request); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	borrow, err := h.service.CreateBorrow(r.Context(), principal.UserID, &request)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Created(w, borrow)
}

// ListActive handles GET /api/borrows
func (h *BorrowHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	borrows, err := h.service.ListActive(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, borrows)
}

// GetBorrow handles GET /api/borrows/{id}
func (h *BorrowHandler) GetBorrow(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	borrow, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, borrow)
}

// UpdateBorrow handles PUT /api/borrows/{id}
func (h *BorrowHandler) UpdateBorrow(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var patch domain.UpdateBorrowRequest
	if err := decodeJSON(r, h.validator, &patch); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	borrow, err := h.service.UpdateOwned(r.Context(), id, principal.UserID, &patch)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, borrow)
}

// DeleteBorrow handles DELETE /api/borrows/{id}
func (h *BorrowHandler) DeleteBorrow(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteOwned(r.Context(), id, principal.UserID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Message(w, "Borrow record deleted")
}

// ReturnBorrow handles PUT /api/borrows/{id}/return. Notifications are
// handed to the sink after the return is committed; delivery failures do
// not fail the request.
func (h *BorrowHandler) ReturnBorrow(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.service.ReturnBorrow(r.Context(), id, principal.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	notifier.Dispatch(r.Context(), h.notifier, h.logger, result.Notifications)

	response.Success(w, result)
}

// ListMine handles GET /api/borrows/user
func (h *BorrowHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	borrows, err := h.service.ListByBorrower(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, borrows)
}

// ListByCatalogItem handles GET /api/borrows/catalogItem/{id}
func (h *BorrowHandler) ListByCatalogItem(w http.ResponseWriter, r *http.Request) {
	borrows, err := h.service.ListByCatalogItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, borrows)
}

// Availability handles GET /api/borrows/catalogItem/{id}/availability
func (h *BorrowHandler) Availability(w http.ResponseWriter, r *http.Request) {
	available, err := h.service.IsAvailable(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	catalogItemID, _ := domain.NormalizeCatalogItemID(mux.Vars(r)["id"])
	response.Success(w, domain.AvailabilityResponse{CatalogItemID: catalogItemID, IsAvailable: available})
}
