// Package events fans lifecycle events out to the configured sinks.
// Emission is observational: a sink failure is logged and never rolls
// back the state change that produced the event.
package events

import (
	"context"

	"collectrent/internal/domain"
)

// Sink receives every lifecycle event in the order it was produced.
type Sink interface {
	Emit(ctx context.Context, event domain.Event) error
}
