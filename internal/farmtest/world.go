// Package farmtest assembles the full game over the in-memory store and a fake clock
// for end-to-end tests.
package farmtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/StealFarm_Go/internal/bootstrap"
	"github.com/osse101/StealFarm_Go/internal/catalog"
	"github.com/osse101/StealFarm_Go/internal/clock"
	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/event"
	"github.com/osse101/StealFarm_Go/internal/server"
	"github.com/osse101/StealFarm_Go/internal/testing/fakestore"
)

// Epoch is the fake clock's starting time
var Epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// TestSecret signs session tokens in tests
const TestSecret = "farmtest-secret-0123456789"

// World is one isolated game instance
type World struct {
	Store    *fakestore.Store
	Clock    *clock.FakeClock
	Bus      *event.MemoryBus
	Crops    *catalog.Catalog
	Services server.Services

	mu     sync.Mutex
	events []event.Event
}

// NewWorld builds a fresh game with the embedded catalog
func NewWorld(t testing.TB) *World {
	t.Helper()

	crops, err := bootstrap.LoadCatalog("")
	require.NoError(t, err)

	w := &World{
		Store: fakestore.New(),
		Clock: clock.NewFakeClock(Epoch),
		Bus:   bootstrap.InitializeEventSystem(),
		Crops: crops,
	}

	for _, typ := range []event.Type{event.CropPlanted, event.CropHarvested, event.CropStolen, event.PlayerLeveledUp} {
		w.Bus.Subscribe(typ, func(_ context.Context, evt event.Event) error {
			w.mu.Lock()
			defer w.mu.Unlock()
			w.events = append(w.events, evt)
			return nil
		})
	}

	w.Services, err = bootstrap.InitializeServices(bootstrap.ServiceDependencies{
		Repos:        &bootstrap.Repositories{Player: w.Store, Farm: w.Store, Friend: w.Store},
		Crops:        crops,
		Clock:        w.Clock,
		EventBus:     w.Bus,
		AuthSecret:   TestSecret,
		AuthTokenTTL: 7 * 24 * time.Hour,
		PasswordCost: bcrypt.MinCost,
	})
	require.NoError(t, err)

	return w
}

// Register creates a player and returns its session
func (w *World) Register(t testing.TB, username string) *domain.Session {
	t.Helper()
	session, err := w.Services.User.Register(context.Background(), username, "password")
	require.NoError(t, err)
	return session
}

// Befriend makes two players friends
func (w *World) Befriend(t testing.TB, a, b string) {
	t.Helper()
	_, err := w.Services.Friend.Add(context.Background(), a, b)
	require.NoError(t, err)
}

// Events returns the event types published so far, in order
func (w *World) Events() []event.Type {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]event.Type, len(w.events))
	for i, e := range w.events {
		out[i] = e.Type
	}
	return out
}
