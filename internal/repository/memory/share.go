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

type shareRepository struct {
	mu     sync.RWMutex
	shares map[domain.AssetID]map[uuid.UUID]domain.Share
}

func NewShareRepository() repository.ShareRepository {
	return &shareRepository{
		shares: make(map[domain.AssetID]map[uuid.UUID]domain.Share),
	}
}

func (r *shareRepository) Upsert(ctx context.Context, share *domain.Share) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byAccount, exists := r.shares[share.AssetID]
	if !exists {
		byAccount = make(map[uuid.UUID]domain.Share)
		r.shares[share.AssetID] = byAccount
	}
	byAccount[share.Account] = *share
	return nil
}

func (r *shareRepository) Get(ctx context.Context, assetID domain.AssetID, account uuid.UUID) (*domain.Share, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	share, exists := r.shares[assetID][account]
	if !exists {
		return nil, domain.ErrNoSuchShare
	}
	out := share
	return &out, nil
}

func (r *shareRepository) Remove(ctx context.Context, assetID domain.AssetID, account uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byAccount, exists := r.shares[assetID]
	if !exists {
		return domain.ErrNoSuchShare
	}
	if _, exists := byAccount[account]; !exists {
		return domain.ErrNoSuchShare
	}
	delete(byAccount, account)
	if len(byAccount) == 0 {
		delete(r.shares, assetID)
	}
	return nil
}

func (r *shareRepository) ListByAsset(ctx context.Context, assetID domain.AssetID) ([]domain.Share, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byAccount := r.shares[assetID]
	out := make([]domain.Share, 0, len(byAccount))
	for _, share := range byAccount {
		out = append(out, share)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Account[:], out[j].Account[:]) < 0
	})
	return out, nil
}

func (r *shareRepository) RemoveByAsset(ctx context.Context, assetID domain.AssetID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.shares, assetID)
	return nil
}
