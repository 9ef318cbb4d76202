package progression

import (
	"context"
	"fmt"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

// ApplyExperience adds amount to exp and levels up while the current level's
// threshold (level * base) is reached. Leftover exp carries over.
func ApplyExperience(level int, exp, amount, base int64) (int, int64) {
	exp += amount
	if base <= 0 {
		return level, exp
	}
	for exp >= int64(level)*base {
		exp -= int64(level) * base
		level++
	}
	return level, exp
}

// Ledger moves coins and experience inside a caller's transaction
type Ledger struct {
	levelExpBase int64
}

// NewLedger creates a ledger using the rules' level threshold
func NewLedger(rules domain.GameRules) *Ledger {
	return &Ledger{levelExpBase: rules.LevelExpBase}
}

// CreditCoins adds delta (which may be negative) and returns the new balance
func (l *Ledger) CreditCoins(ctx context.Context, tx repository.Ledger, playerID string, delta int64) (int64, error) {
	coins, err := tx.AddCoins(ctx, playerID, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to credit coins: %w", err)
	}
	return coins, nil
}

// AddExperience applies amount to the player's experience, leveling as needed
func (l *Ledger) AddExperience(ctx context.Context, tx repository.Ledger, playerID string, amount int64) (domain.LevelResult, error) {
	player, err := tx.GetPlayerForUpdate(ctx, playerID)
	if err != nil {
		return domain.LevelResult{}, err
	}

	level, exp := ApplyExperience(player.Level, player.Exp, amount, l.levelExpBase)
	if err := tx.UpdateProgress(ctx, playerID, level, exp); err != nil {
		return domain.LevelResult{}, fmt.Errorf("failed to update progress: %w", err)
	}

	return domain.LevelResult{
		PlayerID:  playerID,
		OldLevel:  player.Level,
		NewLevel:  level,
		Exp:       exp,
		LeveledUp: level > player.Level,
	}, nil
}
