package progression

import (
	"context"
	"fmt"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/event"
	"github.com/osse101/StealFarm_Go/internal/logger"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

// Service credits coins and experience in their own transaction
type Service interface {
	CreditCoins(ctx context.Context, playerID string, delta int64) (int64, error)
	AddExperience(ctx context.Context, playerID string, amount int64) (*domain.LevelResult, error)
}

type service struct {
	repo   repository.LedgerStore
	ledger *Ledger
	bus    event.Bus
}

// NewService creates a new progression service
func NewService(repo repository.LedgerStore, ledger *Ledger, bus event.Bus) Service {
	return &service{repo: repo, ledger: ledger, bus: bus}
}

// CreditCoins applies delta to the player's balance
func (s *service) CreditCoins(ctx context.Context, playerID string, delta int64) (int64, error) {
	tx, err := s.repo.BeginFarmTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	player, err := tx.GetPlayerForUpdate(ctx, playerID)
	if err != nil {
		return 0, err
	}
	if player.Coins+delta < 0 {
		return 0, fmt.Errorf("%w: balance %d, delta %d", domain.ErrInsufficientFunds, player.Coins, delta)
	}

	coins, err := s.ledger.CreditCoins(ctx, tx, playerID, delta)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return coins, nil
}

// AddExperience applies amount and publishes a level up event when one happens
func (s *service) AddExperience(ctx context.Context, playerID string, amount int64) (*domain.LevelResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: negative experience %d", domain.ErrInvalidInput, amount)
	}

	tx, err := s.repo.BeginFarmTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	result, err := s.ledger.AddExperience(ctx, tx, playerID, amount)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	AnnounceLevelUp(ctx, s.bus, result)
	return &result, nil
}

// AnnounceLevelUp logs and publishes a committed level up. No-op if the level did not change.
func AnnounceLevelUp(ctx context.Context, bus event.Bus, result domain.LevelResult) {
	if !result.LeveledUp {
		return
	}
	logger.FromContext(ctx).Info(LogMsgLevelUp,
		"playerID", result.PlayerID,
		"oldLevel", result.OldLevel,
		"newLevel", result.NewLevel)
	event.PublishQuietly(ctx, bus, event.NewPlayerLeveledUpEvent(result))
}
