package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/service"
	"github.com/segyhp/shelfmark/pkg/response"
)

type contextKey string

const principalKey contextKey = "principal"

// Authenticator resolves a bearer token to its principal.
type Authenticator interface {
	Authenticate(token string) (*domain.Principal, error)
}

// AuthMiddleware attaches the principal of a valid bearer token to the
// request context. Requests without a valid token pass through anonymous.
func AuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if ok {
				if principal, err := auth.Authenticate(token); err == nil {
					r = r.WithContext(WithPrincipal(r.Context(), principal))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); !ok {
			response.Unauthorized(w, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*domain.Principal)
	return p, ok && p != nil
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

type AuthHandler struct {
	service   *service.AuthService
	validator *validator.Validate
	logger    *slog.Logger
}

func NewAuthHandler(service *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var request domain.SignUpRequest
	if err := decodeJSON(r, h.validator, &request); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.service.SignUp(r.Context(), &request)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Created(w, token)
}

// LogIn handles POST /api/auth/login
func (h *AuthHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var request domain.LogInRequest
	if err := decodeJSON(r, h.validator, &request); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.service.LogIn(r.Context(), &request)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, token)
}
