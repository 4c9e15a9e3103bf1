package http

import (
	"net/http"

	"collectrent/internal/domain"
)

// Clock exposes the logical time to read-only endpoints.
type Clock interface {
	CurrentTick() domain.Tick
}

// SystemHandler serves liveness and clock endpoints
type SystemHandler struct {
	clock Clock
}

func NewSystemHandler(clock Clock) *SystemHandler {
	return &SystemHandler{clock: clock}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SystemHandler) CurrentTick(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]uint64{"tick": uint64(h.clock.CurrentTick())})
}
