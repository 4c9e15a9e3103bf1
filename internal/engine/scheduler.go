package engine

import (
	"context"

	"collectrent/internal/domain"
	"collectrent/internal/ledger"
)

// OnTick runs the payment scheduler for tick. The driver calls it once
// per tick; if a dispatch observed the new tick first, the catch-up has
// already run the pass and this call is a no-op.
func (e *Engine) OnTick(ctx context.Context, tick domain.Tick) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catchUpLocked(ctx, tick)
}

// catchUpLocked runs one scheduler pass per tick from lastTick+1 through
// target, in order. Each tick is processed exactly once. Callers must
// hold mu.
func (e *Engine) catchUpLocked(ctx context.Context, target domain.Tick) error {
	var firstErr error
	for tick := e.lastTick + 1; tick <= target; tick++ {
		if err := e.runSchedulerPass(ctx, tick); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if target > e.lastTick {
		e.lastTick = target
	}
	return firstErr
}

// runSchedulerPass settles every agreement due at tick. Each due
// agreement resolves in this pass: collected, renewed, expired or
// defaulted. Nothing is left pending.
func (e *Engine) runSchedulerPass(ctx context.Context, tick domain.Tick) error {
	due, err := e.agreements.DueAtTick(ctx, tick)
	if err != nil {
		return err
	}
	if len(due) > 0 {
		e.log.DebugContext(ctx, "scheduler pass", "tick", uint64(tick), "due", len(due))
	}

	var firstErr error
	for _, assetID := range due {
		if err := e.settleDue(ctx, tick, assetID); err != nil {
			e.log.ErrorContext(ctx, "failed to settle due agreement",
				"tick", uint64(tick),
				"asset_id", assetID.String(),
				"error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (e *Engine) settleDue(ctx context.Context, tick domain.Tick, assetID domain.AssetID) error {
	agreement, err := e.agreements.GetByAsset(ctx, assetID)
	if err != nil {
		return err
	}

	// A term that is over and not renewing ends here, before any money
	// moves: the lessee paid for exactly the periods they got.
	if tick >= agreement.EndTick && !agreement.AutoRenew {
		return e.endRental(ctx, tick, agreement, domain.Event{
			Type: domain.EventRentalExpired,
		})
	}

	if err := e.bank.Transfer(ctx, agreement.Lessee, agreement.Lessor, agreement.RentPerPeriod, tick, ledger.MemoRent); err != nil {
		// Any failure to collect defaults the rental immediately. No
		// grace period: a stuck agreement would block the asset forever.
		return e.endRental(ctx, tick, agreement, domain.Event{
			Type:   domain.EventRentalDefaulted,
			Amount: agreement.RentPerPeriod,
			Attributes: map[string]string{
				"reason": err.Error(),
			},
		})
	}

	e.emit(ctx, domain.Event{
		Type:    domain.EventRentCollected,
		AssetID: assetID,
		Tick:    tick,
		Lessor:  agreement.Lessor,
		Lessee:  agreement.Lessee,
		Amount:  agreement.RentPerPeriod,
	})

	agreement.NextDueTick += agreement.PeriodLength
	if tick >= agreement.EndTick {
		// Auto-renew: the term rolls forward one period.
		agreement.EndTick += agreement.PeriodLength
		e.emit(ctx, domain.Event{
			Type:    domain.EventRentalExtended,
			AssetID: assetID,
			Tick:    tick,
			Lessor:  agreement.Lessor,
			Lessee:  agreement.Lessee,
			Attributes: map[string]string{
				"auto_renew": "true",
			},
		})
	}
	return e.agreements.Update(ctx, agreement)
}

// endRental removes the agreement, clears the shares and reverts the
// asset to Rentable, then emits the terminal event.
func (e *Engine) endRental(ctx context.Context, tick domain.Tick, agreement *domain.RentalAgreement, event domain.Event) error {
	if err := e.agreements.Remove(ctx, agreement.AssetID); err != nil {
		return err
	}
	if err := e.shares.RemoveByAsset(ctx, agreement.AssetID); err != nil {
		return err
	}

	asset, err := e.assets.GetByID(ctx, agreement.AssetID)
	if err != nil {
		return err
	}
	asset.Status = domain.AssetStatusRentable
	if err := e.assets.Update(ctx, asset); err != nil {
		return err
	}

	event.AssetID = agreement.AssetID
	event.Tick = tick
	event.Lessor = agreement.Lessor
	event.Lessee = agreement.Lessee
	e.emit(ctx, event)
	return nil
}
