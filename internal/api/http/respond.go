package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bikeshop-backend/internal/logger"
	"bikeshop-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	Available *int32 `json:"available,omitempty"`
	Requested *int32 `json:"requested,omitempty"`
}

// writeServiceError maps the service error taxonomy onto HTTP statuses. The
// insufficient-stock body carries available/requested so the client can
// correct the quantity.
func writeServiceError(w http.ResponseWriter, err error) {
	var insufficient *service.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     insufficient.Error(),
			Available: &insufficient.Available,
			Requested: &insufficient.Requested,
		})
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrNegativeValue),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUnsupportedPhotoType),
		errors.Is(err, service.ErrPhotoNotUploaded):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotAdmin),
		errors.Is(err, service.ErrSelfRoleChange):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrTransactionAborted):
		// Retryable from scratch; never retried server-side.
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("Unhandled service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// decodeJSON rejects unknown fields so malformed payloads fail at the
// boundary instead of reaching the services half-parsed.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
