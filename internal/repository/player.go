package repository

import (
	"context"

	"github.com/osse101/StealFarm_Go/internal/domain"
)

// Player defines the interface for player account access
type Player interface {
	GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error)
	SearchPlayers(ctx context.Context, keyword, excludeID string, limit int) ([]domain.Player, error)

	BeginPlayerTx(ctx context.Context) (PlayerTx, error)
}

// PlayerTx creates a player and their empty plots atomically
type PlayerTx interface {
	Tx

	// CreatePlayer returns domain.ErrUsernameTaken on a duplicate username
	CreatePlayer(ctx context.Context, player *domain.Player) error
	CreatePlots(ctx context.Context, playerID string, count int) error
}
