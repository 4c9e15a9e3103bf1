package engine

import (
	"context"
	"strconv"

	"collectrent/internal/domain"
	"collectrent/internal/ledger"
	"collectrent/internal/utils"

	"github.com/google/uuid"
)

func (e *Engine) Rent(ctx context.Context, lessee uuid.UUID, assetID domain.AssetID, periodLength domain.Tick, numPeriods uint32, autoRenew bool) (*domain.RentalAgreement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tick := e.beginDispatch(ctx)

	asset, err := e.getAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetStatusRentable {
		return nil, domain.ErrAssetNotRentable
	}
	if lessee == asset.Owner {
		return nil, domain.ErrCannotRentOwnAsset
	}
	if periodLength < asset.Terms.MinPeriodLength {
		return nil, domain.ErrRentalPeriodTooShort
	}
	if periodLength > asset.Terms.MaxPeriodLength {
		return nil, domain.ErrRentalPeriodTooLong
	}
	if numPeriods == 0 {
		return nil, domain.ErrInvalidPeriodCount
	}

	rentPerPeriod := utils.RentPerPeriod(asset.Terms.PricePerTick, periodLength)

	// First period is paid up front. A failed transfer leaves the asset
	// exactly as it was.
	if err := e.bank.Transfer(ctx, lessee, asset.Owner, rentPerPeriod, tick, ledger.MemoRent); err != nil {
		return nil, err
	}

	agreement := &domain.RentalAgreement{
		AssetID:       assetID,
		Lessor:        asset.Owner,
		Lessee:        lessee,
		RentPerPeriod: rentPerPeriod,
		PeriodLength:  periodLength,
		StartTick:     tick,
		EndTick:       tick + domain.Tick(numPeriods)*periodLength,
		AutoRenew:     autoRenew,
		NextDueTick:   tick + periodLength,
	}
	if err := e.agreements.Insert(ctx, agreement); err != nil {
		return nil, err
	}

	asset.Status = domain.AssetStatusRented
	if err := e.assets.Update(ctx, asset); err != nil {
		return nil, err
	}

	e.emit(ctx, domain.Event{
		Type:    domain.EventAssetRented,
		AssetID: assetID,
		Tick:    tick,
		Lessor:  agreement.Lessor,
		Lessee:  lessee,
	})
	e.emit(ctx, domain.Event{
		Type:    domain.EventRentCollected,
		AssetID: assetID,
		Tick:    tick,
		Lessor:  agreement.Lessor,
		Lessee:  lessee,
		Amount:  rentPerPeriod,
	})
	return agreement, nil
}

func (e *Engine) ExtendRent(ctx context.Context, caller uuid.UUID, assetID domain.AssetID, additionalPeriods uint32) (*domain.RentalAgreement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tick := e.beginDispatch(ctx)

	agreement, err := e.agreements.GetByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if agreement.Lessee != caller {
		return nil, domain.ErrNotLessee
	}
	if additionalPeriods == 0 {
		return nil, domain.ErrInvalidPeriodCount
	}

	// No money moves here: the scheduler collects period by period as
	// each due tick arrives.
	agreement.EndTick += domain.Tick(additionalPeriods) * agreement.PeriodLength
	if err := e.agreements.Update(ctx, agreement); err != nil {
		return nil, err
	}

	e.emit(ctx, domain.Event{
		Type:    domain.EventRentalExtended,
		AssetID: assetID,
		Tick:    tick,
		Lessor:  agreement.Lessor,
		Lessee:  agreement.Lessee,
		Attributes: map[string]string{
			"end_tick": strconv.FormatUint(uint64(agreement.EndTick), 10),
		},
	})
	return agreement, nil
}

func (e *Engine) SetRecurring(ctx context.Context, caller uuid.UUID, assetID domain.AssetID, autoRenew bool) (*domain.RentalAgreement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tick := e.beginDispatch(ctx)

	agreement, err := e.agreements.GetByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if agreement.Lessee != caller {
		return nil, domain.ErrNotLessee
	}

	// Takes effect at the next expiry evaluation, never retroactively.
	agreement.AutoRenew = autoRenew
	if err := e.agreements.Update(ctx, agreement); err != nil {
		return nil, err
	}

	e.emit(ctx, domain.Event{
		Type:    domain.EventRecurringChanged,
		AssetID: assetID,
		Tick:    tick,
		Lessor:  agreement.Lessor,
		Lessee:  agreement.Lessee,
		Attributes: map[string]string{
			"auto_renew": strconv.FormatBool(autoRenew),
		},
	})
	return agreement, nil
}

func (e *Engine) GetAgreement(ctx context.Context, assetID domain.AssetID) (*domain.RentalAgreement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beginDispatch(ctx)

	return e.agreements.GetByAsset(ctx, assetID)
}

func (e *Engine) ListRentalsByLessee(ctx context.Context, lessee uuid.UUID) ([]domain.RentalAgreement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beginDispatch(ctx)

	return e.agreements.ListByLessee(ctx, lessee)
}
