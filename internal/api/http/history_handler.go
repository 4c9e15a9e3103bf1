package http

import (
	"context"
	"net/http"

	"collectrent/internal/domain"
)

// EventHistory replays the recorded lifecycle events of one asset,
// oldest first.
type EventHistory interface {
	History(ctx context.Context, assetID domain.AssetID) ([]domain.Event, error)
}

// HistoryHandler serves the per-asset event log.
type HistoryHandler struct {
	events EventHistory
}

func NewHistoryHandler(events EventHistory) *HistoryHandler {
	return &HistoryHandler{events: events}
}

func (h *HistoryHandler) AssetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset id"})
		return
	}
	events, err := h.events.History(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, struct {
		Events []domain.Event `json:"events"`
	}{Events: events})
}
