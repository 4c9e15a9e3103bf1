package events

import (
	"context"
	"sync"

	"collectrent/internal/domain"
)

// Collector buffers events in memory. Tests use it to assert on emission
// order; the memory backend uses it to serve asset history.
type Collector struct {
	mu     sync.Mutex
	events []domain.Event
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Emit(ctx context.Context, event domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

// Events returns a copy of everything collected so far, oldest first.
func (c *Collector) Events() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Event, len(c.events))
	copy(out, c.events)
	return out
}

// History returns the collected events for one asset, oldest first. It
// mirrors Journal.History so the memory backend can serve asset history.
func (c *Collector) History(ctx context.Context, assetID domain.AssetID) ([]domain.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Event
	for _, event := range c.events {
		if event.AssetID == assetID {
			out = append(out, event)
		}
	}
	return out, nil
}
