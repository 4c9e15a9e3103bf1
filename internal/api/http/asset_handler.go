package http

import (
	"net/http"

	"collectrent/internal/domain"
	"collectrent/internal/engine"

	"github.com/google/uuid"
)

// AssetHandler serves the asset registry endpoints.
type AssetHandler struct {
	assets engine.AssetOps
}

func NewAssetHandler(assets engine.AssetOps) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// MintAsset creates a fresh asset owned by the caller. A minted asset
// is not rentable until the owner lists it with terms.
func (h *AssetHandler) MintAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assets.MintAsset(r.Context(), callerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

// BurnAsset destroys the caller's asset. Burned ids answer not-found
// forever after.
func (h *AssetHandler) BurnAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return
	}
	if err := h.assets.BurnAsset(r.Context(), callerID(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetRentable lists the asset under the supplied terms. Relisting a
// rentable asset replaces its terms.
func (h *AssetHandler) SetRentable(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return
	}

	var terms domain.TermsTemplate
	if err := decodeJSON(w, r, &terms); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	asset, err := h.assets.SetRentable(r.Context(), callerID(r.Context()), id, terms)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// SetUnrentable takes the asset off the market. The active rental, if
// any, blocks delisting.
func (h *AssetHandler) SetUnrentable(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return
	}
	asset, err := h.assets.SetUnrentable(r.Context(), callerID(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return
	}
	asset, err := h.assets.GetAsset(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// ListAssets returns either one owner's assets (?owner=<uuid>) or the
// market view of everything currently rentable.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	var (
		assets []domain.Asset
		err    error
	)
	if ownerParam := r.URL.Query().Get("owner"); ownerParam != "" {
		owner, parseErr := uuid.Parse(ownerParam)
		if parseErr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid owner id"})
			return
		}
		assets, err = h.assets.ListAssetsByOwner(r.Context(), owner)
	} else {
		assets, err = h.assets.ListRentableAssets(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if assets == nil {
		assets = []domain.Asset{}
	}
	writeJSON(w, http.StatusOK, struct {
		Assets []domain.Asset `json:"assets"`
	}{Assets: assets})
}
