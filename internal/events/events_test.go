package events_test

import (
	"context"
	"errors"
	"testing"

	"collectrent/internal/domain"
	"collectrent/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	collector := events.NewCollector()
	ctx := context.Background()

	owner := uuid.New()
	first := domain.NewAssetID(owner)
	second := domain.NewAssetID(owner)

	require.NoError(t, collector.Emit(ctx, domain.Event{Type: domain.EventAssetMinted, AssetID: first, Tick: 1}))
	require.NoError(t, collector.Emit(ctx, domain.Event{Type: domain.EventAssetListed, AssetID: first, Tick: 2}))
	require.NoError(t, collector.Emit(ctx, domain.Event{Type: domain.EventAssetMinted, AssetID: second, Tick: 2}))

	all := collector.Events()
	require.Len(t, all, 3)
	assert.Equal(t, domain.EventAssetMinted, all[0].Type)
	assert.Equal(t, domain.EventAssetListed, all[1].Type)

	history, err := collector.History(ctx, first)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.Tick(1), history[0].Tick)
	assert.Equal(t, domain.Tick(2), history[1].Tick)

	history, err = collector.History(ctx, second)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

type failingSink struct {
	calls int
}

func (s *failingSink) Emit(ctx context.Context, event domain.Event) error {
	s.calls++
	return errors.New("sink unavailable")
}

func TestMulti_FailingSinkDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	broken := &failingSink{}
	collector := events.NewCollector()
	multi := events.NewMulti(broken, collector)

	event := domain.Event{
		Type:    domain.EventRentCollected,
		AssetID: domain.NewAssetID(uuid.New()),
		Tick:    5,
		Amount:  50,
	}
	assert.NoError(t, multi.Emit(ctx, event))

	assert.Equal(t, 1, broken.calls)
	require.Len(t, collector.Events(), 1)
	assert.Equal(t, domain.EventRentCollected, collector.Events()[0].Type)
}

type directoryStub struct {
	account *domain.Account
	calls   int
}

func (d *directoryStub) Account(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	d.calls++
	if d.account == nil {
		return nil, domain.ErrAccountNotFound
	}
	return d.account, nil
}

func TestEmailNotifier_OnlyTerminalEventsNotify(t *testing.T) {
	ctx := context.Background()
	directory := &directoryStub{}
	notifier := events.NewEmailNotifier("key", "noreply@collectrent.dev", "Collectrent", directory)

	// Non-terminal events never touch the directory or the mailer.
	for _, eventType := range []domain.EventType{
		domain.EventAssetMinted,
		domain.EventAssetRented,
		domain.EventRentCollected,
		domain.EventRentalExtended,
	} {
		err := notifier.Emit(ctx, domain.Event{Type: eventType, AssetID: domain.NewAssetID(uuid.New())})
		assert.NoError(t, err)
	}
	assert.Equal(t, 0, directory.calls)
}

func TestEmailNotifier_SkipsLesseeWithoutEmail(t *testing.T) {
	ctx := context.Background()
	lessee := uuid.New()
	directory := &directoryStub{account: &domain.Account{ID: lessee}}
	notifier := events.NewEmailNotifier("key", "noreply@collectrent.dev", "Collectrent", directory)

	err := notifier.Emit(ctx, domain.Event{
		Type:    domain.EventRentalExpired,
		AssetID: domain.NewAssetID(uuid.New()),
		Lessee:  lessee,
		Tick:    10,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, directory.calls)
}

func TestEmailNotifier_UnknownLessee(t *testing.T) {
	ctx := context.Background()
	directory := &directoryStub{}
	notifier := events.NewEmailNotifier("key", "noreply@collectrent.dev", "Collectrent", directory)

	err := notifier.Emit(ctx, domain.Event{
		Type:    domain.EventRentalDefaulted,
		AssetID: domain.NewAssetID(uuid.New()),
		Lessee:  uuid.New(),
		Tick:    10,
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
