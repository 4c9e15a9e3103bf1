package postgres

import (
	"context"
	"database/sql"
	"errors"

	"collectrent/internal/domain"
	"collectrent/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type shareRepository struct {
	db *sql.DB
}

func NewShareRepository(db *sql.DB) repository.ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Upsert(ctx context.Context, share *domain.Share) error {
	query := `INSERT INTO ownership_shares (asset_id, account, share) VALUES ($1, $2, $3)
	          ON CONFLICT (asset_id, account) DO UPDATE SET share = EXCLUDED.share`
	_, err := r.db.ExecContext(ctx, query, share.AssetID.String(), share.Account, share.Share)
	return err
}

func (r *shareRepository) Get(ctx context.Context, assetID domain.AssetID, account uuid.UUID) (*domain.Share, error) {
	query := `SELECT asset_id, account, share FROM ownership_shares WHERE asset_id = $1 AND account = $2`
	share, err := scanShare(r.db.QueryRowContext(ctx, query, assetID.String(), account))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoSuchShare
		}
		return nil, err
	}
	return share, nil
}

func (r *shareRepository) Remove(ctx context.Context, assetID domain.AssetID, account uuid.UUID) error {
	query := `DELETE FROM ownership_shares WHERE asset_id = $1 AND account = $2`
	res, err := r.db.ExecContext(ctx, query, assetID.String(), account)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNoSuchShare
	}
	return nil
}

func (r *shareRepository) ListByAsset(ctx context.Context, assetID domain.AssetID) ([]domain.Share, error) {
	query := `SELECT asset_id, account, share FROM ownership_shares WHERE asset_id = $1 ORDER BY account`
	rows, err := r.db.QueryContext(ctx, query, assetID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []domain.Share
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, err
		}
		shares = append(shares, *share)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shares, nil
}

func (r *shareRepository) RemoveByAsset(ctx context.Context, assetID domain.AssetID) error {
	query := `DELETE FROM ownership_shares WHERE asset_id = $1`
	_, err := r.db.ExecContext(ctx, query, assetID.String())
	return err
}

func scanShare(row rowScanner) (*domain.Share, error) {
	var (
		share domain.Share
		rawID string
		value decimal.Decimal
	)
	if err := row.Scan(&rawID, &share.Account, &value); err != nil {
		return nil, err
	}
	id, err := domain.ParseAssetID(rawID)
	if err != nil {
		return nil, err
	}
	share.AssetID = id
	share.Share = value
	return &share, nil
}
