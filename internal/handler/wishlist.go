package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/service"
	"github.com/segyhp/shelfmark/pkg/response"
)

type WishlistHandler struct {
	service   *service.WishlistService
	validator *validator.Validate
	logger    *slog.Logger
}

func NewWishlistHandler(service *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{service: service, validator: validator.New(), logger: logger}
}

// List handles GET /api/wishlists
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	items, err := h.service.List(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, items)
}

// Add handles POST /api/wishlists
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	var request domain.AddWishlistRequest
	if err := decodeJSON(r, h.validator, &request); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	entry, err := h.service.Add(r.Context(), principal.UserID, &request)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Created(w, entry)
}

// Remove handles DELETE /api/wishlists/{id}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.service.Remove(r.Context(), id, principal.UserID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Message(w, "Book removed from wishlist")
}
