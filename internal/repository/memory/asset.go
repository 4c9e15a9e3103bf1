package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"collectrent/internal/domain"
	"collectrent/internal/repository"

	"github.com/google/uuid"
)

type assetRepository struct {
	mu     sync.RWMutex
	assets map[domain.AssetID]domain.Asset
}

func NewAssetRepository() repository.AssetRepository {
	return &assetRepository{
		assets: make(map[domain.AssetID]domain.Asset),
	}
}

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assets[asset.ID]; exists {
		return domain.ErrDuplicateAsset
	}
	r.assets[asset.ID] = cloneAsset(asset)
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id domain.AssetID) (*domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, exists := r.assets[id]
	if !exists {
		return nil, domain.ErrAssetNotFound
	}
	out := cloneAsset(&asset)
	return &out, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assets[asset.ID]; !exists {
		return domain.ErrAssetNotFound
	}
	r.assets[asset.ID] = cloneAsset(asset)
	return nil
}

func (r *assetRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Asset
	for _, asset := range r.assets {
		if asset.Owner == owner && asset.Status != domain.AssetStatusBurned {
			out = append(out, cloneAsset(&asset))
		}
	}
	sortAssets(out)
	return out, nil
}

func (r *assetRepository) ListRentable(ctx context.Context) ([]domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Asset
	for _, asset := range r.assets {
		if asset.Status == domain.AssetStatusRentable {
			out = append(out, cloneAsset(&asset))
		}
	}
	sortAssets(out)
	return out, nil
}

// cloneAsset copies the asset and its terms so callers never alias
// stored state.
func cloneAsset(asset *domain.Asset) domain.Asset {
	out := *asset
	if asset.Terms != nil {
		terms := *asset.Terms
		out.Terms = &terms
	}
	return out
}

func sortAssets(assets []domain.Asset) {
	sort.Slice(assets, func(i, j int) bool {
		return bytes.Compare(assets[i].ID[:], assets[j].ID[:]) < 0
	})
}
