package fakestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/StealFarm_Go/internal/domain"
)

// tx is both a repository.PlayerTx and a repository.FarmTx
type tx struct {
	store *Store
	st    *state
	done  bool
}

func (t *tx) fail(op string) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	return t.store.takeFailure(op)
}

func (t *tx) Commit(ctx context.Context) error {
	if err := t.fail("Commit"); err != nil {
		if !errors.Is(err, pgx.ErrTxClosed) {
			t.finish()
		}
		return err
	}
	t.store.state = t.st
	t.store.commits++
	t.finish()
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.finish()
	return nil
}

func (t *tx) finish() {
	t.done = true
	t.store.mu.Unlock()
}

func (t *tx) CreatePlayer(ctx context.Context, player *domain.Player) error {
	if err := t.fail("CreatePlayer"); err != nil {
		return err
	}
	for _, p := range t.st.players {
		if p.Username == player.Username {
			return fmt.Errorf("%w: %s", domain.ErrUsernameTaken, player.Username)
		}
	}
	t.st.players[player.ID] = *player
	return nil
}

func (t *tx) CreatePlots(ctx context.Context, playerID string, count int) error {
	if err := t.fail("CreatePlots"); err != nil {
		return err
	}
	t.st.plots[playerID] = emptyPlots(playerID, count)
	return nil
}

func (t *tx) GetPlayerForUpdate(ctx context.Context, playerID string) (*domain.Player, error) {
	if err := t.fail("GetPlayerForUpdate"); err != nil {
		return nil, err
	}
	return findPlayer(t.st, playerID)
}

func (t *tx) AddCoins(ctx context.Context, playerID string, delta int64) (int64, error) {
	if err := t.fail("AddCoins"); err != nil {
		return 0, err
	}
	p, ok := t.st.players[playerID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	p.Coins += delta
	t.st.players[playerID] = p
	return p.Coins, nil
}

func (t *tx) UpdateProgress(ctx context.Context, playerID string, level int, exp int64) error {
	if err := t.fail("UpdateProgress"); err != nil {
		return err
	}
	p, ok := t.st.players[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	p.Level = level
	p.Exp = exp
	t.st.players[playerID] = p
	return nil
}

func (t *tx) GetPlotForUpdate(ctx context.Context, ownerID string, index int) (*domain.Plot, error) {
	if err := t.fail("GetPlotForUpdate"); err != nil {
		return nil, err
	}
	p, err := findPlot(t.st, ownerID, index)
	if err != nil {
		return nil, err
	}
	cp := copyPlot(*p)
	return &cp, nil
}

func (t *tx) PlantCrop(ctx context.Context, ownerID string, index int, cropID string, plantedAt time.Time) (bool, error) {
	if err := t.fail("PlantCrop"); err != nil {
		return false, err
	}
	p, err := findPlot(t.st, ownerID, index)
	if err != nil {
		return false, nil
	}
	if p.CropID != nil {
		return false, nil
	}
	at := plantedAt.UTC()
	p.CropID = &cropID
	p.PlantedAt = &at
	p.StolenBy = []string{}
	return true, nil
}

func (t *tx) RecordTheft(ctx context.Context, ownerID string, index int, thiefID string) error {
	if err := t.fail("RecordTheft"); err != nil {
		return err
	}
	p, err := findPlot(t.st, ownerID, index)
	if err != nil {
		return err
	}
	p.StolenBy = append(p.StolenBy, thiefID)
	return nil
}

func (t *tx) ResetPlot(ctx context.Context, ownerID string, index int) error {
	if err := t.fail("ResetPlot"); err != nil {
		return err
	}
	p, err := findPlot(t.st, ownerID, index)
	if err != nil {
		return err
	}
	p.CropID = nil
	p.PlantedAt = nil
	p.StolenBy = []string{}
	return nil
}
