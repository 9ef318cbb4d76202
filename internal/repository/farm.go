package repository

import (
	"context"
	"time"

	"github.com/osse101/StealFarm_Go/internal/domain"
)

// Farm defines the interface for plot access
type Farm interface {
	// GetPlots returns a player's plots ordered by index
	GetPlots(ctx context.Context, ownerID string) ([]domain.Plot, error)
	// GetPlot returns domain.ErrPlotNotFound when the plot does not exist
	GetPlot(ctx context.Context, ownerID string, index int) (*domain.Plot, error)

	BeginFarmTx(ctx context.Context) (FarmTx, error)
}

// Ledger is the player balance part of a transaction
type Ledger interface {
	// GetPlayerForUpdate locks the player row for the rest of the transaction
	GetPlayerForUpdate(ctx context.Context, playerID string) (*domain.Player, error)
	// AddCoins applies delta and returns the new balance
	AddCoins(ctx context.Context, playerID string, delta int64) (int64, error)
	UpdateProgress(ctx context.Context, playerID string, level int, exp int64) error
}

// FarmTx holds the plot and balance writes of one farm action.
// Callers lock the plot before the player row.
type FarmTx interface {
	Tx
	Ledger

	GetPlotForUpdate(ctx context.Context, ownerID string, index int) (*domain.Plot, error)
	// PlantCrop only fills an empty plot. It reports false when the plot was occupied.
	PlantCrop(ctx context.Context, ownerID string, index int, cropID string, plantedAt time.Time) (bool, error)
	// RecordTheft appends thiefID to the plot's thief list
	RecordTheft(ctx context.Context, ownerID string, index int, thiefID string) error
	// ResetPlot clears crop, planted time and thieves
	ResetPlot(ctx context.Context, ownerID string, index int) error
}

// LedgerStore opens transactions that can move coins and experience
type LedgerStore interface {
	BeginFarmTx(ctx context.Context) (FarmTx, error)
}
