package theft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StealFarm_Go/internal/catalog"
	"github.com/osse101/StealFarm_Go/internal/clock"
	"github.com/osse101/StealFarm_Go/internal/concurrency"
	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/event"
	"github.com/osse101/StealFarm_Go/internal/progression"
	"github.com/osse101/StealFarm_Go/internal/testing/fakestore"
	"github.com/osse101/StealFarm_Go/internal/testing/leaktest"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store *fakestore.Store
	bus   *event.MemoryBus
	svc   Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	crops, err := catalog.Load("")
	require.NoError(t, err)

	store := fakestore.New()
	for _, id := range []string{"owner", "bob", "carol", "dave"} {
		store.SeedPlayer(domain.Player{ID: id, Username: id, Coins: 100, Level: 1}, 6)
	}
	store.SeedFriends("owner", "bob", testNow)
	store.SeedFriends("owner", "carol", testNow)

	corn := "corn"
	at := testNow.Add(-3 * time.Minute)
	store.SeedPlot(domain.Plot{OwnerID: "owner", Index: 2, CropID: &corn, PlantedAt: &at, StolenBy: []string{}})

	clk := clock.NewFakeClock(testNow)
	bus := event.NewMemoryBus()
	return &fixture{
		store: store,
		bus:   bus,
		svc: NewService(store, store, crops, progression.NewLedger(crops.Rules()), clk,
			concurrency.NewLockManager(), bus),
	}
}

func TestSteal_Success(t *testing.T) {
	f := newFixture(t)
	var stolen []domain.CropStolenPayload
	f.bus.Subscribe(event.CropStolen, func(ctx context.Context, evt event.Event) error {
		p, err := event.DecodePayload[domain.CropStolenPayload](evt.Payload)
		require.NoError(t, err)
		stolen = append(stolen, p)
		return nil
	})

	result, err := f.svc.Steal(context.Background(), "bob", "owner", 2)

	require.NoError(t, err)
	assert.Equal(t, int64(24), result.Amount)
	assert.Equal(t, int64(124), result.Coins)
	assert.Equal(t, "corn", result.CropID)

	thief, _ := f.store.Player("bob")
	assert.Equal(t, int64(124), thief.Coins)
	assert.Equal(t, int64(0), thief.Exp, "thieves earn no experience")

	owner, _ := f.store.Player("owner")
	assert.Equal(t, int64(100), owner.Coins)

	stored, _ := f.store.Plot("owner", 2)
	assert.Equal(t, []string{"bob"}, stored.StolenBy)
	require.Len(t, stolen, 1)
	assert.Equal(t, "owner", stolen[0].OwnerID)
}

func TestSteal_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *fixture)
		thief   string
		owner   string
		index   int
		wantErr error
	}{
		{name: "own farm", thief: "owner", owner: "owner", index: 2, wantErr: domain.ErrInvalidInput},
		{name: "not friends", thief: "dave", owner: "owner", index: 2, wantErr: domain.ErrNotFriends},
		{name: "empty plot", thief: "bob", owner: "owner", index: 0, wantErr: domain.ErrNoCrop},
		{name: "missing plot", thief: "bob", owner: "owner", index: 40, wantErr: domain.ErrPlotNotFound},
		{
			name: "not ready",
			setup: func(f *fixture) {
				tomato := "tomato"
				at := testNow.Add(-time.Minute)
				f.store.SeedPlot(domain.Plot{OwnerID: "owner", Index: 3, CropID: &tomato, PlantedAt: &at})
			},
			thief: "bob", owner: "owner", index: 3, wantErr: domain.ErrNotReady,
		},
		{
			name: "already stolen",
			setup: func(f *fixture) {
				corn := "corn"
				at := testNow.Add(-time.Hour)
				f.store.SeedPlot(domain.Plot{OwnerID: "owner", Index: 2, CropID: &corn, PlantedAt: &at, StolenBy: []string{"bob"}})
			},
			thief: "bob", owner: "owner", index: 2, wantErr: domain.ErrAlreadyStolen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.svc.Steal(context.Background(), tt.thief, tt.owner, tt.index)

			assert.ErrorIs(t, err, tt.wantErr)
			thief, _ := f.store.Player(tt.thief)
			assert.Equal(t, int64(100), thief.Coins)
		})
	}
}

func TestSteal_TwoThievesThenHarvestShare(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Steal(context.Background(), "bob", "owner", 2)
	require.NoError(t, err)
	_, err = f.svc.Steal(context.Background(), "carol", "owner", 2)
	require.NoError(t, err)

	stored, _ := f.store.Plot("owner", 2)
	assert.ElementsMatch(t, []string{"bob", "carol"}, stored.StolenBy)
}

func TestSteal_FailureRollsBack(t *testing.T) {
	f := newFixture(t)
	f.store.FailNext("AddCoins", errors.New("deadlock detected"))

	_, err := f.svc.Steal(context.Background(), "bob", "owner", 2)

	require.Error(t, err)
	stored, _ := f.store.Plot("owner", 2)
	assert.Empty(t, stored.StolenBy)
	thief, _ := f.store.Player("bob")
	assert.Equal(t, int64(100), thief.Coins)
}

func TestSteal_ConcurrentSameThiefPaysOnce(t *testing.T) {
	f := newFixture(t)

	errs := leaktest.Concurrently(t, 10, func(int) error {
		_, err := f.svc.Steal(context.Background(), "bob", "owner", 2)
		return err
	})

	assert.Equal(t, 1, leaktest.CountNil(errs))
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrAlreadyStolen)
		}
	}
	thief, _ := f.store.Player("bob")
	assert.Equal(t, int64(124), thief.Coins)
	stored, _ := f.store.Plot("owner", 2)
	assert.Equal(t, []string{"bob"}, stored.StolenBy)
}
