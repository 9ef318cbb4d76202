package progression

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/event"
	"github.com/osse101/StealFarm_Go/internal/testing/fakestore"
)

func newTestService(t *testing.T) (Service, *fakestore.Store, *event.MemoryBus) {
	t.Helper()
	store := fakestore.New()
	store.SeedPlayer(domain.Player{ID: "p1", Username: "p1", Coins: 50, Level: 1}, 0)
	bus := event.NewMemoryBus()
	ledger := NewLedger(domain.GameRules{LevelExpBase: 100})
	return NewService(store, ledger, bus), store, bus
}

func TestService_CreditCoins(t *testing.T) {
	svc, store, _ := newTestService(t)

	coins, err := svc.CreditCoins(context.Background(), "p1", 25)
	require.NoError(t, err)
	assert.Equal(t, int64(75), coins)

	coins, err = svc.CreditCoins(context.Background(), "p1", -75)
	require.NoError(t, err)
	assert.Equal(t, int64(0), coins)

	_, err = svc.CreditCoins(context.Background(), "p1", -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	p, _ := store.Player("p1")
	assert.Equal(t, int64(0), p.Coins)
}

func TestService_CreditCoins_UnknownPlayer(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreditCoins(context.Background(), "ghost", 10)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestService_AddExperience(t *testing.T) {
	svc, store, bus := newTestService(t)
	var events []event.Event
	bus.Subscribe(event.PlayerLeveledUp, func(ctx context.Context, evt event.Event) error {
		events = append(events, evt)
		return nil
	})

	result, err := svc.AddExperience(context.Background(), "p1", 40)
	require.NoError(t, err)
	assert.False(t, result.LeveledUp)
	assert.Empty(t, events)

	result, err = svc.AddExperience(context.Background(), "p1", 320)
	require.NoError(t, err)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 3, result.NewLevel)
	assert.Equal(t, int64(60), result.Exp)
	assert.Len(t, events, 1)

	p, _ := store.Player("p1")
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, int64(60), p.Exp)
}

func TestService_AddExperience_Negative(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AddExperience(context.Background(), "p1", -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
