package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/StealFarm_Go/internal/auth"
	"github.com/osse101/StealFarm_Go/internal/clock"
	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/testing/fakestore"
)

var testRules = domain.GameRules{InitialCoins: 100, InitialPlots: 6, MaxPlots: 9, StealFraction: 0.3, LevelExpBase: 100}

func newTestService(t *testing.T) (Service, *fakestore.Store, *clock.FakeClock) {
	t.Helper()
	clk := clock.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	tokens, err := auth.NewTokens("test-secret-test-secret", time.Hour, clk)
	require.NoError(t, err)
	store := fakestore.New()
	return NewService(store, tokens, auth.NewPasswords(bcrypt.MinCost), testRules, clk), store, clk
}

func TestRegister(t *testing.T) {
	svc, store, clk := newTestService(t)

	session, err := svc.Register(context.Background(), "  farmer  ", "hunter2")

	require.NoError(t, err)
	require.NotNil(t, session.Player)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, clk.Now().Add(time.Hour), session.ExpiresAt)

	p := session.Player
	assert.Equal(t, "farmer", p.Username)
	assert.Equal(t, int64(100), p.Coins)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(0), p.Exp)
	assert.NotEqual(t, "hunter2", p.PasswordHash)

	plots, err := store.GetPlots(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, plots, 6)
	for i, plot := range plots {
		assert.Equal(t, i, plot.Index)
		assert.True(t, plot.IsEmpty())
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"username too short", "a", "hunter2", domain.ErrInvalidInput},
		{"username too long", strings.Repeat("x", MaxUsernameLength+1), "hunter2", domain.ErrInvalidInput},
		{"blank username", "   ", "hunter2", domain.ErrInvalidInput},
		{"control character", "far\tmer", "hunter2", domain.ErrInvalidInput},
		{"password too short", "farmer", "abc", domain.ErrInvalidInput},
		{"password too long", "farmer", strings.Repeat("p", MaxPasswordLength+1), domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			_, err := svc.Register(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Register(context.Background(), "farmer", "hunter2")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "farmer", "another")

	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_NormalizedNamesCollide(t *testing.T) {
	svc, _, _ := newTestService(t)
	// "é" precomposed vs "e" + combining acute accent
	_, err := svc.Register(context.Background(), "café", "hunter2")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "café", "hunter2")

	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_RollbackOnPlotFailure(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.FailNext("CreatePlots", assert.AnError)

	_, err := svc.Register(context.Background(), "farmer", "hunter2")
	require.Error(t, err)

	_, err = store.GetPlayerByUsername(context.Background(), "farmer")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	registered, err := svc.Register(context.Background(), "farmer", "hunter2")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		session, err := svc.Login(context.Background(), "farmer", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, registered.Player.ID, session.Player.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "farmer", "hunter3")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody", "hunter2")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthenticate(t *testing.T) {
	svc, _, clk := newTestService(t)
	session, err := svc.Register(context.Background(), "farmer", "hunter2")
	require.NoError(t, err)

	playerID, err := svc.Authenticate(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Player.ID, playerID)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("player that never existed", func(t *testing.T) {
		other, _, _ := newTestService(t)
		foreign, err := other.Register(context.Background(), "stranger", "hunter2")
		require.NoError(t, err)

		_, err = svc.Authenticate(context.Background(), foreign.Token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		clk.Advance(2 * time.Hour)
		_, err := svc.Authenticate(context.Background(), session.Token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

}

func TestGetProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	session, err := svc.Register(context.Background(), "farmer", "hunter2")
	require.NoError(t, err)

	p, err := svc.GetProfile(context.Background(), session.Player.ID)
	require.NoError(t, err)
	assert.Equal(t, "farmer", p.Username)

	_, err = svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}
