package postgres_test

import (
	"context"
	"testing"

	"collectrent/internal/domain"
	"collectrent/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShareRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewShareRepository(db)
	ctx := context.Background()

	account := uuid.New()
	share := &domain.Share{
		AssetID: domain.NewAssetID(uuid.New()),
		Account: account,
		Share:   decimal.RequireFromString("0.25"),
	}

	mock.ExpectExec("INSERT INTO ownership_shares").
		WithArgs(share.AssetID.String(), account, share.Share).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Upsert(ctx, share)
	assert.NoError(t, err)
}

func TestShareRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewShareRepository(db)
	ctx := context.Background()

	account := uuid.New()
	assetID := domain.NewAssetID(uuid.New())

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"asset_id", "account", "share"}).
			AddRow(assetID.String(), account, "0.25")

		mock.ExpectQuery("SELECT (.+) FROM ownership_shares WHERE asset_id = \\$1 AND account = \\$2").
			WithArgs(assetID.String(), account).
			WillReturnRows(rows)

		share, err := repo.Get(ctx, assetID, account)
		assert.NoError(t, err)
		assert.NotNil(t, share)
		assert.True(t, share.Share.Equal(decimal.RequireFromString("0.25")))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM ownership_shares WHERE asset_id = \\$1 AND account = \\$2").
			WithArgs(assetID.String(), account).
			WillReturnRows(sqlmock.NewRows([]string{"asset_id", "account", "share"}))

		share, err := repo.Get(ctx, assetID, account)
		assert.ErrorIs(t, err, domain.ErrNoSuchShare)
		assert.Nil(t, share)
	})
}

func TestShareRepository_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewShareRepository(db)
	ctx := context.Background()

	account := uuid.New()
	assetID := domain.NewAssetID(uuid.New())

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM ownership_shares WHERE asset_id = \\$1 AND account = \\$2").
			WithArgs(assetID.String(), account).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Remove(ctx, assetID, account)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM ownership_shares WHERE asset_id = \\$1 AND account = \\$2").
			WithArgs(assetID.String(), account).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Remove(ctx, assetID, account)
		assert.ErrorIs(t, err, domain.ErrNoSuchShare)
	})
}

func TestShareRepository_ListByAsset(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewShareRepository(db)
	ctx := context.Background()

	assetID := domain.NewAssetID(uuid.New())
	first := uuid.New()
	second := uuid.New()

	rows := sqlmock.NewRows([]string{"asset_id", "account", "share"}).
		AddRow(assetID.String(), first, "0.25").
		AddRow(assetID.String(), second, "0.5")

	mock.ExpectQuery("SELECT (.+) FROM ownership_shares WHERE asset_id = \\$1 ORDER BY account").
		WithArgs(assetID.String()).
		WillReturnRows(rows)

	shares, err := repo.ListByAsset(ctx, assetID)
	assert.NoError(t, err)
	assert.Len(t, shares, 2)

	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Share)
	}
	assert.True(t, total.Equal(decimal.RequireFromString("0.75")))
}
