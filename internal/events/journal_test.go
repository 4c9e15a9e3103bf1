package events_test

import (
	"context"
	"fmt"
	"testing"

	"collectrent/internal/domain"
	"collectrent/internal/events"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_Emit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	journal := events.NewJournal(db)
	ctx := context.Background()

	assetID := domain.NewAssetID(uuid.New())
	event := domain.Event{
		Type:    domain.EventRentCollected,
		AssetID: assetID,
		Tick:    5,
		Lessor:  uuid.New(),
		Lessee:  uuid.New(),
		Amount:  50,
	}

	mock.ExpectQuery("INSERT INTO rental_events").
		WithArgs(string(domain.EventRentCollected), assetID.String(), sqlmock.AnyArg(), int64(5), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	err = journal.Emit(ctx, event)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_History(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	journal := events.NewJournal(db)
	ctx := context.Background()

	lessor := uuid.New()
	lessee := uuid.New()
	assetID := domain.NewAssetID(lessor)

	payload := fmt.Sprintf(`{"lessor":"%s","lessee":"%s","amount":50}`, lessor, lessee)
	rows := sqlmock.NewRows([]string{"event_type", "payload", "tick"}).
		AddRow("ASSET_RENTED", []byte(payload), int64(0)).
		AddRow("RENT_COLLECTED", []byte(payload), int64(0)).
		AddRow("RENT_COLLECTED", []byte(payload), int64(5))

	mock.ExpectQuery("SELECT event_type, payload, tick").
		WithArgs(assetID.String()).
		WillReturnRows(rows)

	history, err := journal.History(ctx, assetID)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, domain.EventAssetRented, history[0].Type)
	assert.Equal(t, assetID, history[0].AssetID)
	assert.Equal(t, lessor, history[0].Lessor)
	assert.Equal(t, lessee, history[0].Lessee)
	assert.Equal(t, domain.Balance(50), history[0].Amount)
	assert.Equal(t, domain.Tick(5), history[2].Tick)
}
