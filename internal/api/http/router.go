package http

import (
	"net/http"

	"bikeshop-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth        *AuthHandler
	Bike        *BikeHandler
	Part        *PartHandler
	Transaction *TransactionHandler
	User        *UserHandler
	Photo       *PhotoHandler
}

// NewRouter builds the API route tree. Reads on bikes and parts are public;
// everything that records or edits state requires a token, and
// item-management plus user-management routes additionally require admin.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/bikes", h.Bike.List).Methods(http.MethodGet)
	api.HandleFunc("/bikes/{id:[0-9]+}", h.Bike.Get).Methods(http.MethodGet)
	api.HandleFunc("/parts", h.Part.List).Methods(http.MethodGet)
	api.HandleFunc("/parts/{id:[0-9]+}", h.Part.Get).Methods(http.MethodGet)
	api.HandleFunc("/photos/upload", h.Photo.Upload).Methods(http.MethodPut)
	api.HandleFunc("/photos/download", h.Photo.Download).Methods(http.MethodGet)

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))
	authed.HandleFunc("/transactions", h.Transaction.Create).Methods(http.MethodPost)
	authed.HandleFunc("/transactions", h.Transaction.List).Methods(http.MethodGet)
	authed.HandleFunc("/transactions/{id:[0-9]+}", h.Transaction.Get).Methods(http.MethodGet)
	authed.HandleFunc("/transactions/item/{itemType}/{id:[0-9]+}", h.Transaction.ListByItem).Methods(http.MethodGet)
	authed.HandleFunc("/parts/{id:[0-9]+}/stock-history", h.Transaction.StockHistory).Methods(http.MethodGet)

	// Admin
	admin := api.NewRoute().Subrouter()
	admin.Use(AuthMiddleware(tokens), AdminOnly)
	admin.HandleFunc("/bikes", h.Bike.Create).Methods(http.MethodPost)
	admin.HandleFunc("/bikes/{id:[0-9]+}", h.Bike.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/bikes/{id:[0-9]+}", h.Bike.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/parts", h.Part.Create).Methods(http.MethodPost)
	admin.HandleFunc("/parts/{id:[0-9]+}", h.Part.Update).Methods(http.MethodPut)
	admin.HandleFunc("/parts/{id:[0-9]+}", h.Part.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/transactions/{id:[0-9]+}", h.Transaction.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/transactions/{id:[0-9]+}", h.Transaction.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/users", h.User.List).Methods(http.MethodGet)
	admin.HandleFunc("/users", h.User.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}/role", h.User.UpdateRole).Methods(http.MethodPatch)
	admin.HandleFunc("/photos/upload-url", h.Photo.GetUploadURL).Methods(http.MethodPost)
	admin.HandleFunc("/photos/attach", h.Photo.Attach).Methods(http.MethodPost)

	return r
}
