package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/service"
	"github.com/segyhp/shelfmark/pkg/response"
)

type ReviewHandler struct {
	service   *service.ReviewService
	validator *validator.Validate
	logger    *slog.Logger
}

func NewReviewHandler(service *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, validator: validator.New(), logger: logger}
}

// List handles GET /api/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, reviews)
}

// ListByCatalogItem handles GET /api/reviews/{catalogItemId}
func (h *ReviewHandler) ListByCatalogItem(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListByCatalogItem(r.Context(), mux.Vars(r)["catalogItemId"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, reviews)
}

// Get handles GET /api/reviews/detail/{id}
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	review, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, review)
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	var request domain.CreateReviewRequest
	if err := decodeJSON(r, h.validator, &request); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	review, err := h.service.Create(r.Context(), principal.UserID, &request)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Created(w, review)
}

// Update handles PUT /api/reviews/{id}
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var patch domain.UpdateReviewRequest
	if err := decodeJSON(r, h.validator, &patch); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	review, err := h.service.UpdateOwned(r.Context(), id, principal.UserID, &patch)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, review)
}

// Delete handles DELETE /api/reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	response.Message(w, "Review deleted")
}
