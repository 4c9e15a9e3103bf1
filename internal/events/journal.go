package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"collectrent/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Journal appends every event to the rental_events table so asset history
// survives restarts. Rows are append-only; the serial id gives a total
// order across assets.
type Journal struct {
	db     *sql.DB
	tracer trace.Tracer
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{
		db:     db,
		tracer: otel.Tracer("collectrent/events/journal"),
	}
}

type eventPayload struct {
	Lessor     uuid.UUID         `json:"lessor"`
	Lessee     uuid.UUID         `json:"lessee"`
	Amount     domain.Balance    `json:"amount"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func (j *Journal) Emit(ctx context.Context, event domain.Event) error {
	ctx, span := j.tracer.Start(ctx, "journal.append",
		trace.WithAttributes(
			attribute.String("event.type", string(event.Type)),
			attribute.String("asset.id", event.AssetID.String()),
			attribute.Int64("tick", int64(event.Tick)),
		),
	)
	defer span.End()

	payload, err := json.Marshal(eventPayload{
		Lessor:     event.Lessor,
		Lessee:     event.Lessee,
		Amount:     event.Amount,
		Attributes: event.Attributes,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var id int64
	err = j.db.QueryRowContext(ctx, `
		INSERT INTO rental_events (event_type, asset_id, payload, tick, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, string(event.Type), event.AssetID.String(), payload, int64(event.Tick), time.Now().UTC()).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	span.SetAttributes(attribute.Int64("event.id", id))
	return nil
}

// History replays the journalled events for one asset, oldest first.
func (j *Journal) History(ctx context.Context, assetID domain.AssetID) ([]domain.Event, error) {
	ctx, span := j.tracer.Start(ctx, "journal.history",
		trace.WithAttributes(
			attribute.String("asset.id", assetID.String()),
		),
	)
	defer span.End()

	rows, err := j.db.QueryContext(ctx, `
		SELECT event_type, payload, tick
		FROM rental_events
		WHERE asset_id = $1
		ORDER BY id ASC
	`, assetID.String())
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var history []domain.Event
	for rows.Next() {
		var (
			eventType string
			raw       []byte
			tick      int64
		)
		if err := rows.Scan(&eventType, &raw, &tick); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		var payload eventPayload
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &payload); err != nil {
				return nil, fmt.Errorf("unmarshal payload: %w", err)
			}
		}

		history = append(history, domain.Event{
			Type:       domain.EventType(eventType),
			AssetID:    assetID,
			Tick:       domain.Tick(tick),
			Lessor:     payload.Lessor,
			Lessee:     payload.Lessee,
			Amount:     payload.Amount,
			Attributes: payload.Attributes,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	span.SetAttributes(attribute.Int("events.loaded", len(history)))
	return history, nil
}
