package http

import (
	"net/http"

	"collectrent/internal/domain"
	"collectrent/internal/engine"
)

// RentalHandler serves the rental lifecycle endpoints.
type RentalHandler struct {
	rentals engine.RentalOps
}

func NewRentalHandler(rentals engine.RentalOps) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

// RentAsset starts a rental for the caller. The first period's rent is
// collected before the agreement exists, so a failed payment leaves no
// trace.
func (h *RentalHandler) RentAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return
	}

	var req struct {
		PeriodLength domain.Tick `json:"period_length"`
		NumPeriods   uint32      `json:"num_periods"`
		AutoRenew    bool        `json:"auto_renew"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	agreement, err := h.rentals.Rent(r.Context(), callerID(r.Context()), id, req.PeriodLength, req.NumPeriods, req.AutoRenew)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, agreement)
}

// ExtendRent pushes the agreement's end further out. Nothing is charged
// here; the extra periods are collected as they come due.
func (h *RentalHandler) ExtendRent(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return
	}

	var req struct {
		AdditionalPeriods uint32 `json:"additional_periods"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	agreement, err := h.rentals.ExtendRent(r.Context(), callerID(r.Context()), id, req.AdditionalPeriods)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agreement)
}

// SetRecurring toggles auto-renewal. The flag is consulted when the
// term runs out, never retroactively.
func (h *RentalHandler) SetRecurring(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return
	}

	var req struct {
		AutoRenew bool `json:"auto_renew"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	agreement, err := h.rentals.SetRecurring(r.Context(), callerID(r.Context()), id, req.AutoRenew)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agreement)
}

func (h *RentalHandler) GetAgreement(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return
	}
	agreement, err := h.rentals.GetAgreement(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agreement)
}

// ListRentals returns the caller's active agreements as lessee.
func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentals.ListRentalsByLessee(r.Context(), callerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rentals == nil {
		rentals = []domain.RentalAgreement{}
	}
	writeJSON(w, http.StatusOK, struct {
		Rentals []domain.RentalAgreement `json:"rentals"`
	}{Rentals: rentals})
}
