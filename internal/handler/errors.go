package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	customError "github.com/segyhp/shelfmark/pkg/errors"
	"github.com/segyhp/shelfmark/pkg/response"
)

// writeError translates a service error into a status and an error body.
// Internal failures are logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := customError.CodeOf(err)
	message := err.Error()
	var be *customError.BusinessError
	if errors.As(err, &be) {
		message = be.Message
	}

	switch customError.KindOf(err) {
	case customError.KindInvalidArgument:
		response.BadRequest(w, code, message)
	case customError.KindUnauthorized:
		response.Error(w, http.StatusUnauthorized, code, message)
	case customError.KindNotFound:
		response.NotFound(w, code, message)
	case customError.KindConflict:
		response.Error(w, http.StatusConflict, code, message)
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"code", code,
			"error", err,
		)
		if code == customError.ErrCodeCatalogUnavailable {
			response.Error(w, http.StatusBadGateway, code, "Catalog service unavailable")
			return
		}
		response.InternalServerError(w, "Internal server error")
	}
}

// decodeJSON reads a request body into dst, rejecting unknown fields, then validates it.
func decodeJSON(r *http.Request, v *validator.Validate, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return customError.WrapInvalidArgument(fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := v.Struct(dst); err != nil {
		return customError.WrapInvalidArgument(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return "Validation failed: " + strings.Join(parts, ", ")
}

// pathUUID parses a mux path variable as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, customError.WrapInvalidArgument(fmt.Sprintf("invalid %s %q", name, raw))
	}
	return id, nil
}
