package engine

import (
	"context"

	"collectrent/internal/domain"

	"github.com/google/uuid"
)

func (e *Engine) MintAsset(ctx context.Context, owner uuid.UUID) (*domain.Asset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tick := e.beginDispatch(ctx)

	asset := &domain.Asset{
		ID:           domain.NewAssetID(owner),
		Owner:        owner,
		Status:       domain.AssetStatusCreated,
		MintedAtTick: tick,
	}
	if err := e.assets.Create(ctx, asset); err != nil {
		return nil, err
	}

	e.emit(ctx, domain.Event{
		Type:    domain.EventAssetMinted,
		AssetID: asset.ID,
		Tick:    tick,
		Lessor:  owner,
	})
	return asset, nil
}

func (e *Engine) BurnAsset(ctx context.Context, caller uuid.UUID, assetID domain.AssetID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	tick := e.beginDispatch(ctx)

	asset, err := e.getAsset(ctx, assetID)
	if err != nil {
		return err
	}
	if asset.Owner != caller {
		return domain.ErrNotOwner
	}
	if asset.Status == domain.AssetStatusRented {
		return domain.ErrAssetNotBurnable
	}

	// The row stays as a tombstone so the id can never be reused.
	asset.Status = domain.AssetStatusBurned
	asset.Terms = nil
	if err := e.assets.Update(ctx, asset); err != nil {
		return err
	}

	e.emit(ctx, domain.Event{
		Type:    domain.EventAssetBurned,
		AssetID: assetID,
		Tick:    tick,
		Lessor:  caller,
	})
	return nil
}

func (e *Engine) SetRentable(ctx context.Context, caller uuid.UUID, assetID domain.AssetID, terms domain.TermsTemplate) (*domain.Asset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tick := e.beginDispatch(ctx)

	asset, err := e.getAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Owner != caller {
		return nil, domain.ErrNotOwner
	}
	if asset.Status == domain.AssetStatusRented {
		return nil, domain.ErrAssetRented
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	// Listing again while already Rentable just replaces the terms.
	asset.Status = domain.AssetStatusRentable
	asset.Terms = &terms
	if err := e.assets.Update(ctx, asset); err != nil {
		return nil, err
	}

	e.emit(ctx, domain.Event{
		Type:    domain.EventAssetListed,
		AssetID: assetID,
		Tick:    tick,
		Lessor:  caller,
	})
	return asset, nil
}

func (e *Engine) SetUnrentable(ctx context.Context, caller uuid.UUID, assetID domain.AssetID) (*domain.Asset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tick := e.beginDispatch(ctx)

	asset, err := e.getAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Owner != caller {
		return nil, domain.ErrNotOwner
	}
	if asset.Status == domain.AssetStatusRented {
		return nil, domain.ErrAssetRented
	}

	asset.Status = domain.AssetStatusCreated
	asset.Terms = nil
	if err := e.assets.Update(ctx, asset); err != nil {
		return nil, err
	}

	e.emit(ctx, domain.Event{
		Type:    domain.EventAssetUnlisted,
		AssetID: assetID,
		Tick:    tick,
		Lessor:  caller,
	})
	return asset, nil
}

func (e *Engine) GetAsset(ctx context.Context, assetID domain.AssetID) (*domain.Asset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beginDispatch(ctx)

	return e.getAsset(ctx, assetID)
}

func (e *Engine) ListAssetsByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Asset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beginDispatch(ctx)

	return e.assets.ListByOwner(ctx, owner)
}

func (e *Engine) ListRentableAssets(ctx context.Context) ([]domain.Asset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beginDispatch(ctx)

	return e.assets.ListRentable(ctx)
}
