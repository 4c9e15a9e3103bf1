// Package ticker drives the logical clock. Time in the rental system is
// a monotonically increasing tick counter; nothing below this package
// looks at wall-clock time for lifecycle decisions.
package ticker

import (
	"context"
	"sync/atomic"
	"time"

	"collectrent/internal/domain"
	"collectrent/internal/logger"

	"github.com/robfig/cron/v3"
)

// Counter is the authoritative tick counter. It is safe for concurrent
// reads while the driver advances it.
type Counter struct {
	tick atomic.Uint64
}

// NewCounter starts the clock at the genesis tick.
func NewCounter(genesis domain.Tick) *Counter {
	c := &Counter{}
	c.tick.Store(uint64(genesis))
	return c
}

// CurrentTick returns the current tick.
func (c *Counter) CurrentTick() domain.Tick {
	return domain.Tick(c.tick.Load())
}

// Advance moves the clock forward by one tick and returns the new value.
func (c *Counter) Advance() domain.Tick {
	return domain.Tick(c.tick.Add(1))
}

// TickHandler is called once per tick, after the counter has advanced.
type TickHandler interface {
	OnTick(ctx context.Context, tick domain.Tick) error
}

// Driver advances the counter on a cron cadence and hands each new tick
// to the handler. A panicking or failing handler never stops the clock.
type Driver struct {
	cron    *cron.Cron
	counter *Counter
	handler TickHandler
}

// NewDriver wires the counter and handler to a cron schedule. The spec
// uses seconds precision, e.g. "*/5 * * * * *" for one tick every five
// seconds.
func NewDriver(spec string, counter *Counter, handler TickHandler) (*Driver, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	d := &Driver{
		cron:    c,
		counter: counter,
		handler: handler,
	}

	if _, err := c.AddFunc(spec, d.step); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) step() {
	d.runWithRecovery("tick", func() {
		tick := d.counter.Advance()
		if err := d.handler.OnTick(context.Background(), tick); err != nil {
			logger.Error("Tick processing failed", "tick", uint64(tick), "error", err)
		}
	})
}

// runWithRecovery wraps tick execution with panic recovery so a bad
// handler cannot kill the cron goroutine.
func (d *Driver) runWithRecovery(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Tick handler panicked", "job", name, "panic", r)
		}
	}()
	fn()
}

// Start begins advancing ticks.
func (d *Driver) Start() {
	logger.Info("Starting tick driver...")
	d.cron.Start()
	logger.Info("Tick driver started", "tick", uint64(d.counter.CurrentTick()))
}

// Stop halts the clock and waits for an in-flight tick to finish.
func (d *Driver) Stop() {
	logger.Info("Stopping tick driver...")
	ctx := d.cron.Stop()
	<-ctx.Done()
	logger.Info("Tick driver stopped", "tick", uint64(d.counter.CurrentTick()))
}
