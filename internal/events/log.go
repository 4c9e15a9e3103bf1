package events

import (
	"context"
	"log/slog"

	"collectrent/internal/domain"
	"collectrent/internal/logger"

	"github.com/google/uuid"
)

// LogSink writes each event to the structured log. It is always wired in
// so operators can follow the lifecycle without any external sink.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{log: logger.WithComponent("events")}
}

func (s *LogSink) Emit(ctx context.Context, event domain.Event) error {
	args := []any{
		"type", string(event.Type),
		"asset_id", event.AssetID.String(),
		"tick", uint64(event.Tick),
	}
	if event.Lessor != uuid.Nil {
		args = append(args, "lessor", event.Lessor.String())
	}
	if event.Lessee != uuid.Nil {
		args = append(args, "lessee", event.Lessee.String())
	}
	if event.Amount != 0 {
		args = append(args, "amount", int64(event.Amount))
	}
	for key, value := range event.Attributes {
		args = append(args, key, value)
	}
	s.log.InfoContext(ctx, "lifecycle event", args...)
	return nil
}
