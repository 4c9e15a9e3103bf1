package http

import (
	"net/http"

	"collectrent/internal/domain"
	"collectrent/internal/engine"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// ShareHandler serves the fractional usage-share endpoints.
type ShareHandler struct {
	shares engine.ShareOps
}

func NewShareHandler(shares engine.ShareOps) *ShareHandler {
	return &ShareHandler{shares: shares}
}

// EquipShare grants the holder a fraction of the rented asset, or
// replaces the fraction they already hold.
func (h *ShareHandler) EquipShare(w http.ResponseWriter, r *http.Request) {
	id, holder, ok := shareVars(w, r)
	if !ok {
		return
	}

	var req struct {
		Share decimal.Decimal `json:"share"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	share, err := h.shares.EquipShare(r.Context(), callerID(r.Context()), holder, id, req.Share)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, share)
}

// UnequipShare removes the holder's share. The lessee can revoke any
// share; a holder can only drop their own.
func (h *ShareHandler) UnequipShare(w http.ResponseWriter, r *http.Request) {
	id, holder, ok := shareVars(w, r)
	if !ok {
		return
	}
	if err := h.shares.UnequipShare(r.Context(), callerID(r.Context()), holder, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShareHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return
	}
	shares, err := h.shares.ListShares(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if shares == nil {
		shares = []domain.Share{}
	}
	writeJSON(w, http.StatusOK, struct {
		Shares []domain.Share `json:"shares"`
	}{Shares: shares})
}

// shareVars parses the {id} and {account} route variables, answering
// the request itself when either is malformed.
func shareVars(w http.ResponseWriter, r *http.Request) (domain.AssetID, uuid.UUID, bool) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return domain.AssetID{}, uuid.Nil, false
	}
	holder, err := uuid.Parse(mux.Vars(r)["account"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid account id"})
		return domain.AssetID{}, uuid.Nil, false
	}
	return id, holder, true
}
