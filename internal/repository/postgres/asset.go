package postgres

import (
	"context"
	"database/sql"
	"errors"

	"collectrent/internal/domain"
	"collectrent/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type assetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) repository.AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `INSERT INTO assets (id, owner, status, price_per_tick, min_period_length, max_period_length, minted_at_tick)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	price, minLen, maxLen := termsColumns(asset.Terms)
	_, err := r.db.ExecContext(ctx, query, asset.ID.String(), asset.Owner, asset.Status, price, minLen, maxLen, int64(asset.MintedAtTick))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateAsset
		}
		return err
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id domain.AssetID) (*domain.Asset, error) {
	query := `SELECT id, owner, status, price_per_tick, min_period_length, max_period_length, minted_at_tick
	          FROM assets WHERE id = $1`
	asset, err := scanAsset(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	query := `UPDATE assets SET status=$1, price_per_tick=$2, min_period_length=$3, max_period_length=$4 WHERE id=$5`
	price, minLen, maxLen := termsColumns(asset.Terms)
	res, err := r.db.ExecContext(ctx, query, asset.Status, price, minLen, maxLen, asset.ID.String())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func (r *assetRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Asset, error) {
	query := `SELECT id, owner, status, price_per_tick, min_period_length, max_period_length, minted_at_tick
	          FROM assets WHERE owner = $1 AND status <> $2 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, owner, domain.AssetStatusBurned)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssets(rows)
}

func (r *assetRepository) ListRentable(ctx context.Context) ([]domain.Asset, error) {
	query := `SELECT id, owner, status, price_per_tick, min_period_length, max_period_length, minted_at_tick
	          FROM assets WHERE status = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, domain.AssetStatusRentable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssets(rows)
}

func termsColumns(terms *domain.TermsTemplate) (price, minLen, maxLen sql.NullInt64) {
	if terms == nil {
		return
	}
	price = sql.NullInt64{Int64: int64(terms.PricePerTick), Valid: true}
	minLen = sql.NullInt64{Int64: int64(terms.MinPeriodLength), Valid: true}
	maxLen = sql.NullInt64{Int64: int64(terms.MaxPeriodLength), Valid: true}
	return
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var (
		asset  domain.Asset
		rawID  string
		minted int64
		price  sql.NullInt64
		minLen sql.NullInt64
		maxLen sql.NullInt64
	)
	if err := row.Scan(&rawID, &asset.Owner, &asset.Status, &price, &minLen, &maxLen, &minted); err != nil {
		return nil, err
	}
	id, err := domain.ParseAssetID(rawID)
	if err != nil {
		return nil, err
	}
	asset.ID = id
	asset.MintedAtTick = domain.Tick(minted)
	if price.Valid {
		asset.Terms = &domain.TermsTemplate{
			PricePerTick:    domain.Balance(price.Int64),
			MinPeriodLength: domain.Tick(minLen.Int64),
			MaxPeriodLength: domain.Tick(maxLen.Int64),
		}
	}
	return &asset, nil
}

func collectAssets(rows *sql.Rows) ([]domain.Asset, error) {
	var assets []domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}
