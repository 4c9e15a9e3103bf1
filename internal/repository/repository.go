package repository

import (
	"context"

	"collectrent/internal/domain"

	"github.com/google/uuid"
)

type AssetRepository interface {
	// Create stores a new asset, failing with domain.ErrDuplicateAsset
	// if the id is already taken. Burned assets keep their row, so ids
	// are never reused.
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id domain.AssetID) (*domain.Asset, error)
	Update(ctx context.Context, asset *domain.Asset) error
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Asset, error)
	ListRentable(ctx context.Context) ([]domain.Asset, error)
}

type AgreementRepository interface {
	// Insert fails with domain.ErrAssetRented if the asset already has
	// an agreement; at most one agreement per asset, always.
	Insert(ctx context.Context, agreement *domain.RentalAgreement) error
	Update(ctx context.Context, agreement *domain.RentalAgreement) error
	Remove(ctx context.Context, assetID domain.AssetID) error
	GetByAsset(ctx context.Context, assetID domain.AssetID) (*domain.RentalAgreement, error)
	ListByLessee(ctx context.Context, lessee uuid.UUID) ([]domain.RentalAgreement, error)

	// DueAtTick returns the asset ids whose next_due_tick equals tick,
	// in ascending id order. The scan is proportional to the number due
	// at that tick, not to the number of agreements.
	DueAtTick(ctx context.Context, tick domain.Tick) ([]domain.AssetID, error)
}

type ShareRepository interface {
	// Upsert replaces an existing share for the same account.
	Upsert(ctx context.Context, share *domain.Share) error
	Get(ctx context.Context, assetID domain.AssetID, account uuid.UUID) (*domain.Share, error)
	Remove(ctx context.Context, assetID domain.AssetID, account uuid.UUID) error
	// ListByAsset returns shares in ascending account order.
	ListByAsset(ctx context.Context, assetID domain.AssetID) ([]domain.Share, error)
	// RemoveByAsset clears every share of the asset; removing none is
	// not an error.
	RemoveByAsset(ctx context.Context, assetID domain.AssetID) error
}
