package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"collectrent/internal/domain"
	"collectrent/internal/logger"

	"github.com/gorilla/mux"
)

type errorResponse struct {
	Error string `json:"error"`
}

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

// writeError translates a dispatch error into a response. Internal
// failures are logged and answered with a generic message so storage
// details never leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotLessee):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrAgreementNotFound),
		errors.Is(err, domain.ErrNoSuchShare),
		errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrAssetRented),
		errors.Is(err, domain.ErrAssetNotRentable),
		errors.Is(err, domain.ErrAssetNotRented),
		errors.Is(err, domain.ErrAssetNotBurnable),
		errors.Is(err, domain.ErrDuplicateAsset),
		errors.Is(err, domain.ErrCannotRentOwnAsset),
		errors.Is(err, domain.ErrShareOverflow):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTerms),
		errors.Is(err, domain.ErrRentalPeriodTooShort),
		errors.Is(err, domain.ErrRentalPeriodTooLong),
		errors.Is(err, domain.ErrInvalidPeriodCount),
		errors.Is(err, domain.ErrInvalidShare),
		errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the JSON request body into dst. Bodies are capped at
// 64KB; every legitimate request fits in a fraction of that.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathAssetID parses the {id} route variable.
func pathAssetID(r *http.Request) (domain.AssetID, error) {
	return domain.ParseAssetID(mux.Vars(r)["id"])
}
