// Package engine is the rental core: it validates dispatch requests
// against the asset registry and the rental ledger, applies them, and
// runs the per-tick payment scheduler.
//
// All state changes go through a single mutex, so within one tick the
// scheduler pass and the dispatches form one serial history. Before any
// dispatch executes, the engine catches the scheduler up to the current
// tick; a lessee can never dodge a due payment by racing the clock.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"collectrent/internal/domain"
	"collectrent/internal/logger"
	"collectrent/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TickSource supplies the current logical time.
type TickSource interface {
	CurrentTick() domain.Tick
}

// LedgerGateway moves money. Transfer must be atomic: on error no
// balance changed.
type LedgerGateway interface {
	Transfer(ctx context.Context, from, to uuid.UUID, amount domain.Balance, tick domain.Tick, memo string) error
}

// EventSink receives lifecycle events. Sink errors are logged, never
// propagated: an event is an observation, not part of the transition.
type EventSink interface {
	Emit(ctx context.Context, event domain.Event) error
}

type AssetOps interface {
	MintAsset(ctx context.Context, owner uuid.UUID) (*domain.Asset, error)
	BurnAsset(ctx context.Context, caller uuid.UUID, assetID domain.AssetID) error
	SetRentable(ctx context.Context, caller uuid.UUID, assetID domain.AssetID, terms domain.TermsTemplate) (*domain.Asset, error)
	SetUnrentable(ctx context.Context, caller uuid.UUID, assetID domain.AssetID) (*domain.Asset, error)
	GetAsset(ctx context.Context, assetID domain.AssetID) (*domain.Asset, error)
	ListAssetsByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Asset, error)
	ListRentableAssets(ctx context.Context) ([]domain.Asset, error)
}

type RentalOps interface {
	Rent(ctx context.Context, lessee uuid.UUID, assetID domain.AssetID, periodLength domain.Tick, numPeriods uint32, autoRenew bool) (*domain.RentalAgreement, error)
	ExtendRent(ctx context.Context, caller uuid.UUID, assetID domain.AssetID, additionalPeriods uint32) (*domain.RentalAgreement, error)
	SetRecurring(ctx context.Context, caller uuid.UUID, assetID domain.AssetID, autoRenew bool) (*domain.RentalAgreement, error)
	GetAgreement(ctx context.Context, assetID domain.AssetID) (*domain.RentalAgreement, error)
	ListRentalsByLessee(ctx context.Context, lessee uuid.UUID) ([]domain.RentalAgreement, error)
}

type ShareOps interface {
	EquipShare(ctx context.Context, caller, holder uuid.UUID, assetID domain.AssetID, value decimal.Decimal) (*domain.Share, error)
	UnequipShare(ctx context.Context, caller, holder uuid.UUID, assetID domain.AssetID) error
	ListShares(ctx context.Context, assetID domain.AssetID) ([]domain.Share, error)
}

type Engine struct {
	mu sync.Mutex

	assets     repository.AssetRepository
	agreements repository.AgreementRepository
	shares     repository.ShareRepository
	bank       LedgerGateway
	sink       EventSink
	clock      TickSource

	// lastTick is the newest tick whose scheduler pass has run. Guarded
	// by mu.
	lastTick domain.Tick

	log *slog.Logger
}

var (
	_ AssetOps  = (*Engine)(nil)
	_ RentalOps = (*Engine)(nil)
	_ ShareOps  = (*Engine)(nil)
)

func NewEngine(
	assets repository.AssetRepository,
	agreements repository.AgreementRepository,
	shares repository.ShareRepository,
	bank LedgerGateway,
	sink EventSink,
	clock TickSource,
) *Engine {
	return &Engine{
		assets:     assets,
		agreements: agreements,
		shares:     shares,
		bank:       bank,
		sink:       sink,
		clock:      clock,
		lastTick:   clock.CurrentTick(),
		log:        logger.WithComponent("engine"),
	}
}

// beginDispatch brings the scheduler up to the current tick and returns
// it. Callers must hold mu.
func (e *Engine) beginDispatch(ctx context.Context) domain.Tick {
	tick := e.clock.CurrentTick()
	if err := e.catchUpLocked(ctx, tick); err != nil {
		e.log.ErrorContext(ctx, "scheduler catch-up failed", "tick", uint64(tick), "error", err)
	}
	return tick
}

func (e *Engine) emit(ctx context.Context, event domain.Event) {
	if err := e.sink.Emit(ctx, event); err != nil {
		e.log.ErrorContext(ctx, "event emission failed",
			"type", string(event.Type),
			"asset_id", event.AssetID.String(),
			"error", err)
	}
}

// getAsset hides burned assets: a tombstone answers not-found to every
// operation.
func (e *Engine) getAsset(ctx context.Context, id domain.AssetID) (*domain.Asset, error) {
	asset, err := e.assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.Status == domain.AssetStatusBurned {
		return nil, domain.ErrAssetNotFound
	}
	return asset, nil
}
