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

type agreementRepository struct {
	mu         sync.RWMutex
	agreements map[domain.AssetID]domain.RentalAgreement

	// dueIndex buckets agreements by next_due_tick so a scheduler pass
	// touches only what is due at that tick.
	dueIndex map[domain.Tick]map[domain.AssetID]struct{}
}

func NewAgreementRepository() repository.AgreementRepository {
	return &agreementRepository{
		agreements: make(map[domain.AssetID]domain.RentalAgreement),
		dueIndex:   make(map[domain.Tick]map[domain.AssetID]struct{}),
	}
}

func (r *agreementRepository) Insert(ctx context.Context, agreement *domain.RentalAgreement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.agreements[agreement.AssetID]; exists {
		return domain.ErrAssetRented
	}
	r.agreements[agreement.AssetID] = *agreement
	r.indexDue(agreement.NextDueTick, agreement.AssetID)
	return nil
}

func (r *agreementRepository) Update(ctx context.Context, agreement *domain.RentalAgreement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.agreements[agreement.AssetID]
	if !exists {
		return domain.ErrAgreementNotFound
	}
	if prev.NextDueTick != agreement.NextDueTick {
		r.unindexDue(prev.NextDueTick, prev.AssetID)
		r.indexDue(agreement.NextDueTick, agreement.AssetID)
	}
	r.agreements[agreement.AssetID] = *agreement
	return nil
}

func (r *agreementRepository) Remove(ctx context.Context, assetID domain.AssetID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	agreement, exists := r.agreements[assetID]
	if !exists {
		return domain.ErrAgreementNotFound
	}
	r.unindexDue(agreement.NextDueTick, assetID)
	delete(r.agreements, assetID)
	return nil
}

func (r *agreementRepository) GetByAsset(ctx context.Context, assetID domain.AssetID) (*domain.RentalAgreement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agreement, exists := r.agreements[assetID]
	if !exists {
		return nil, domain.ErrAgreementNotFound
	}
	out := agreement
	return &out, nil
}

func (r *agreementRepository) ListByLessee(ctx context.Context, lessee uuid.UUID) ([]domain.RentalAgreement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.RentalAgreement
	for _, agreement := range r.agreements {
		if agreement.Lessee == lessee {
			out = append(out, agreement)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].AssetID[:], out[j].AssetID[:]) < 0
	})
	return out, nil
}

func (r *agreementRepository) DueAtTick(ctx context.Context, tick domain.Tick) ([]domain.AssetID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.dueIndex[tick]
	if !exists {
		return nil, nil
	}
	out := make([]domain.AssetID, 0, len(bucket))
	for id := range bucket {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out, nil
}

func (r *agreementRepository) indexDue(tick domain.Tick, assetID domain.AssetID) {
	bucket, exists := r.dueIndex[tick]
	if !exists {
		bucket = make(map[domain.AssetID]struct{})
		r.dueIndex[tick] = bucket
	}
	bucket[assetID] = struct{}{}
}

func (r *agreementRepository) unindexDue(tick domain.Tick, assetID domain.AssetID) {
	bucket, exists := r.dueIndex[tick]
	if !exists {
		return
	}
	delete(bucket, assetID)
	if len(bucket) == 0 {
		delete(r.dueIndex, tick)
	}
}
