package engine

import (
	"context"
	"errors"

	"collectrent/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (e *Engine) EquipShare(ctx context.Context, caller, holder uuid.UUID, assetID domain.AssetID, value decimal.Decimal) (*domain.Share, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tick := e.beginDispatch(ctx)

	agreement, err := e.liveAgreement(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := e.authorizeShareCall(ctx, agreement, caller); err != nil {
		return nil, err
	}
	if !domain.ValidShareValue(value) {
		return nil, domain.ErrInvalidShare
	}

	// Re-equipping replaces the holder's share, so the overflow check
	// excludes their current value.
	existing, err := e.shares.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	total := value
	for _, s := range existing {
		if s.Account == holder {
			continue
		}
		total = total.Add(s.Share)
	}
	if total.GreaterThan(domain.WholeShare) {
		return nil, domain.ErrShareOverflow
	}

	share := &domain.Share{
		AssetID: assetID,
		Account: holder,
		Share:   value,
	}
	if err := e.shares.Upsert(ctx, share); err != nil {
		return nil, err
	}

	e.emit(ctx, domain.Event{
		Type:    domain.EventShareEquipped,
		AssetID: assetID,
		Tick:    tick,
		Lessor:  agreement.Lessor,
		Lessee:  agreement.Lessee,
		Attributes: map[string]string{
			"account": holder.String(),
			"share":   value.String(),
		},
	})
	return share, nil
}

func (e *Engine) UnequipShare(ctx context.Context, caller, holder uuid.UUID, assetID domain.AssetID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	tick := e.beginDispatch(ctx)

	agreement, err := e.liveAgreement(ctx, assetID)
	if err != nil {
		return err
	}
	// The lessee can revoke any share; a holder can only drop their own.
	if caller != agreement.Lessee && caller != holder {
		return domain.ErrNotLessee
	}
	if err := e.shares.Remove(ctx, assetID, holder); err != nil {
		return err
	}

	e.emit(ctx, domain.Event{
		Type:    domain.EventShareUnequipped,
		AssetID: assetID,
		Tick:    tick,
		Lessor:  agreement.Lessor,
		Lessee:  agreement.Lessee,
		Attributes: map[string]string{
			"account": holder.String(),
		},
	})
	return nil
}

func (e *Engine) ListShares(ctx context.Context, assetID domain.AssetID) ([]domain.Share, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beginDispatch(ctx)

	if _, err := e.liveAgreement(ctx, assetID); err != nil {
		return nil, err
	}
	return e.shares.ListByAsset(ctx, assetID)
}

// liveAgreement maps a missing agreement to ErrAssetNotRented: share
// operations talk about the rental, not the agreement record.
func (e *Engine) liveAgreement(ctx context.Context, assetID domain.AssetID) (*domain.RentalAgreement, error) {
	agreement, err := e.agreements.GetByAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, domain.ErrAgreementNotFound) {
			return nil, domain.ErrAssetNotRented
		}
		return nil, err
	}
	return agreement, nil
}

// authorizeShareCall admits the lessee and anyone already holding a
// share of the asset.
func (e *Engine) authorizeShareCall(ctx context.Context, agreement *domain.RentalAgreement, caller uuid.UUID) error {
	if caller == agreement.Lessee {
		return nil
	}
	if _, err := e.shares.Get(ctx, agreement.AssetID, caller); err == nil {
		return nil
	}
	return domain.ErrNotLessee
}
