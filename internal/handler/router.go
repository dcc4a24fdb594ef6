package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/segyhp/shelfmark/pkg/response"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          Authenticator
	Health        *HealthHandler
	AuthAPI       *AuthHandler
	Borrows       *BorrowHandler
	Wishlists     *WishlistHandler
	Reviews       *ReviewHandler
	Books         *BooksHandler
	RequestLogger *slog.Logger
}

// NewRouter wires all routes and middleware.
func NewRouter(h Handlers) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(h.RequestLogger))
	router.Use(response.CORSMiddleware)

	if h.Health != nil {
		router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
		router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.Use(response.NoCacheMiddleware)
	if h.Auth != nil {
		api.Use(AuthMiddleware(h.Auth))
	}

	if h.AuthAPI != nil {
		api.HandleFunc("/auth/signup", h.AuthAPI.SignUp).Methods(http.MethodPost)
		api.HandleFunc("/auth/login", h.AuthAPI.LogIn).Methods(http.MethodPost)
	}

	if b := h.Borrows; b != nil {
		api.HandleFunc("/borrows", b.ListActive).Methods(http.MethodGet)
		api.HandleFunc("/borrows", RequireAuth(b.CreateBorrow)).Methods(http.MethodPost)
		api.HandleFunc("/borrows/user", RequireAuth(b.ListMine)).Methods(http.MethodGet)
		api.HandleFunc("/borrows/catalogItem/{id}", b.ListByCatalogItem).Methods(http.MethodGet)
		api.HandleFunc("/borrows/book/{id}", b.ListByCatalogItem).Methods(http.MethodGet)
		api.HandleFunc("/borrows/catalogItem/{id}/availability", b.Availability).Methods(http.MethodGet)
		api.HandleFunc("/borrows/{id}", b.GetBorrow).Methods(http.MethodGet)
		api.HandleFunc("/borrows/{id}", RequireAuth(b.UpdateBorrow)).Methods(http.MethodPut)
		api.HandleFunc("/borrows/{id}", RequireAuth(b.DeleteBorrow)).Methods(http.MethodDelete)
		api.HandleFunc("/borrows/{id}/return", RequireAuth(b.ReturnBorrow)).Methods(http.MethodPut)
	}

	if wl := h.Wishlists; wl != nil {
		api.HandleFunc("/wishlists", RequireAuth(wl.List)).Methods(http.MethodGet)
		api.HandleFunc("/wishlists", RequireAuth(wl.Add)).Methods(http.MethodPost)
		api.HandleFunc("/wishlists/{id}", RequireAuth(wl.Remove)).Methods(http.MethodDelete)
	}

	if rv := h.Reviews; rv != nil {
		api.HandleFunc("/reviews", rv.List).Methods(http.MethodGet)
		api.HandleFunc("/reviews", RequireAuth(rv.Create)).Methods(http.MethodPost)
		api.HandleFunc("/reviews/detail/{id}", rv.Get).Methods(http.MethodGet)
		api.HandleFunc("/reviews/{catalogItemId}", rv.ListByCatalogItem).Methods(http.MethodGet)
		api.HandleFunc("/reviews/{id}", RequireAuth(rv.Update)).Methods(http.MethodPut)
		api.HandleFunc("/reviews/{id}", RequireAuth(rv.Delete)).Methods(http.MethodDelete)
	}

	if bk := h.Books; bk != nil {
		api.HandleFunc("/books/search", bk.Search).Methods(http.MethodGet)
		api.HandleFunc("/books/works/{id}", bk.Show).Methods(http.MethodGet)
		api.HandleFunc("/books/{id}", bk.Show).Methods(http.MethodGet)
	}

	return router
}
