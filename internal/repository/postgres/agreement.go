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

type agreementRepository struct {
	db *sql.DB
}

func NewAgreementRepository(db *sql.DB) repository.AgreementRepository {
	return &agreementRepository{db: db}
}

func (r *agreementRepository) Insert(ctx context.Context, agreement *domain.RentalAgreement) error {
	query := `INSERT INTO rental_agreements (asset_id, lessor, lessee, rent_per_period, period_length, start_tick, end_tick, auto_renew, next_due_tick)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		agreement.AssetID.String(), agreement.Lessor, agreement.Lessee,
		int64(agreement.RentPerPeriod), int64(agreement.PeriodLength),
		int64(agreement.StartTick), int64(agreement.EndTick),
		agreement.AutoRenew, int64(agreement.NextDueTick))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAssetRented
		}
		return err
	}
	return nil
}

func (r *agreementRepository) Update(ctx context.Context, agreement *domain.RentalAgreement) error {
	query := `UPDATE rental_agreements SET end_tick=$1, auto_renew=$2, next_due_tick=$3 WHERE asset_id=$4`
	res, err := r.db.ExecContext(ctx, query,
		int64(agreement.EndTick), agreement.AutoRenew, int64(agreement.NextDueTick), agreement.AssetID.String())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAgreementNotFound
	}
	return nil
}

func (r *agreementRepository) Remove(ctx context.Context, assetID domain.AssetID) error {
	query := `DELETE FROM rental_agreements WHERE asset_id=$1`
	res, err := r.db.ExecContext(ctx, query, assetID.String())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAgreementNotFound
	}
	return nil
}

func (r *agreementRepository) GetByAsset(ctx context.Context, assetID domain.AssetID) (*domain.RentalAgreement, error) {
	query := `SELECT asset_id, lessor, lessee, rent_per_period, period_length, start_tick, end_tick, auto_renew, next_due_tick
	          FROM rental_agreements WHERE asset_id = $1`
	agreement, err := scanAgreement(r.db.QueryRowContext(ctx, query, assetID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAgreementNotFound
		}
		return nil, err
	}
	return agreement, nil
}

func (r *agreementRepository) ListByLessee(ctx context.Context, lessee uuid.UUID) ([]domain.RentalAgreement, error) {
	query := `SELECT asset_id, lessor, lessee, rent_per_period, period_length, start_tick, end_tick, auto_renew, next_due_tick
	          FROM rental_agreements WHERE lessee = $1 ORDER BY asset_id`
	rows, err := r.db.QueryContext(ctx, query, lessee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAgreements(rows)
}

func (r *agreementRepository) DueAtTick(ctx context.Context, tick domain.Tick) ([]domain.AssetID, error) {
	query := `SELECT asset_id FROM rental_agreements WHERE next_due_tick = $1 ORDER BY asset_id`
	rows, err := r.db.QueryContext(ctx, query, int64(tick))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []domain.AssetID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, err := domain.ParseAssetID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func scanAgreement(row rowScanner) (*domain.RentalAgreement, error) {
	var (
		agreement domain.RentalAgreement
		rawID     string
		rent      int64
		period    int64
		start     int64
		end       int64
		nextDue   int64
	)
	if err := row.Scan(&rawID, &agreement.Lessor, &agreement.Lessee, &rent, &period, &start, &end, &agreement.AutoRenew, &nextDue); err != nil {
		return nil, err
	}
	id, err := domain.ParseAssetID(rawID)
	if err != nil {
		return nil, err
	}
	agreement.AssetID = id
	agreement.RentPerPeriod = domain.Balance(rent)
	agreement.PeriodLength = domain.Tick(period)
	agreement.StartTick = domain.Tick(start)
	agreement.EndTick = domain.Tick(end)
	agreement.NextDueTick = domain.Tick(nextDue)
	return &agreement, nil
}

func collectAgreements(rows *sql.Rows) ([]domain.RentalAgreement, error) {
	var agreements []domain.RentalAgreement
	for rows.Next() {
		agreement, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		agreements = append(agreements, *agreement)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return agreements, nil
}
