package events

import (
	"context"

	"collectrent/internal/domain"
	"collectrent/internal/logger"
)

// Multi delivers each event to every sink in order. A failing sink is
// logged and skipped so one slow or broken destination cannot starve
// the others.
type Multi struct {
	sinks []Sink
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Emit(ctx context.Context, event domain.Event) error {
	for _, sink := range m.sinks {
		if err := sink.Emit(ctx, event); err != nil {
			logger.ErrorContext(ctx, "event sink failed",
				"type", string(event.Type),
				"asset_id", event.AssetID.String(),
				"error", err)
		}
	}
	return nil
}
