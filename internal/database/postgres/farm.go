package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

const plotColumns = `owner_id::text, plot_index, crop_id, planted_at, stolen_by`

// FarmRepository implements repository.Farm for PostgreSQL
type FarmRepository struct {
	db *pgxpool.Pool
}

var _ repository.Farm = (*FarmRepository)(nil)

// NewFarmRepository creates a new FarmRepository
func NewFarmRepository(db *pgxpool.Pool) *FarmRepository {
	return &FarmRepository{db: db}
}

// GetPlots returns the owner's plots ordered by index
func (r *FarmRepository) GetPlots(ctx context.Context, ownerID string) ([]domain.Plot, error) {
	id, err := parsePlayerUUID(ownerID, domain.ErrPlayerNotFound)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + plotColumns + ` FROM plots WHERE owner_id = $1 ORDER BY plot_index`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlots, err)
	}
	defer rows.Close()

	plots := make([]domain.Plot, 0)
	for rows.Next() {
		p, err := scanPlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanPlotRows, err)
		}
		plots = append(plots, *p)
	}
	return plots, rows.Err()
}

// GetPlot returns domain.ErrPlotNotFound when the plot does not exist
func (r *FarmRepository) GetPlot(ctx context.Context, ownerID string, index int) (*domain.Plot, error) {
	return getPlot(ctx, r.db, ownerID, index, false)
}

// BeginFarmTx starts a farm action transaction
func (r *FarmRepository) BeginFarmTx(ctx context.Context) (repository.FarmTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &farmTx{tx: tx}, nil
}

// farmTx implements repository.FarmTx
type farmTx struct {
	tx pgx.Tx
}

func (t *farmTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *farmTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *farmTx) GetPlayerForUpdate(ctx context.Context, playerID string) (*domain.Player, error) {
	return getPlayer(ctx, t.tx, playerID, true)
}

func (t *farmTx) AddCoins(ctx context.Context, playerID string, delta int64) (int64, error) {
	id, err := parsePlayerUUID(playerID, domain.ErrPlayerNotFound)
	if err != nil {
		return 0, err
	}
	var coins int64
	err = t.tx.QueryRow(ctx,
		`UPDATE players SET coins = coins + $2 WHERE player_id = $1 RETURNING coins`,
		id, delta).Scan(&coins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCoins, err)
	}
	return coins, nil
}

func (t *farmTx) UpdateProgress(ctx context.Context, playerID string, level int, exp int64) error {
	id, err := parsePlayerUUID(playerID, domain.ErrPlayerNotFound)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `UPDATE players SET level = $2, exp = $3 WHERE player_id = $1`, id, level, exp)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProgress, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	return nil
}

func (t *farmTx) GetPlotForUpdate(ctx context.Context, ownerID string, index int) (*domain.Plot, error) {
	return getPlot(ctx, t.tx, ownerID, index, true)
}

func (t *farmTx) PlantCrop(ctx context.Context, ownerID string, index int, cropID string, plantedAt time.Time) (bool, error) {
	id, err := parsePlayerUUID(ownerID, domain.ErrPlotNotFound)
	if err != nil {
		return false, err
	}
	query := `
		UPDATE plots
		SET crop_id = $3, planted_at = $4, stolen_by = '{}'
		WHERE owner_id = $1 AND plot_index = $2 AND crop_id IS NULL
	`
	tag, err := t.tx.Exec(ctx, query, id, index, cropID, plantedAt.UTC())
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToPlantCrop, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *farmTx) RecordTheft(ctx context.Context, ownerID string, index int, thiefID string) error {
	id, err := parsePlayerUUID(ownerID, domain.ErrPlotNotFound)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx,
		`UPDATE plots SET stolen_by = array_append(stolen_by, $3) WHERE owner_id = $1 AND plot_index = $2`,
		id, index, thiefID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordTheft, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: owner %s index %d", domain.ErrPlotNotFound, ownerID, index)
	}
	return nil
}

func (t *farmTx) ResetPlot(ctx context.Context, ownerID string, index int) error {
	id, err := parsePlayerUUID(ownerID, domain.ErrPlotNotFound)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx,
		`UPDATE plots SET crop_id = NULL, planted_at = NULL, stolen_by = '{}' WHERE owner_id = $1 AND plot_index = $2`,
		id, index)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToResetPlot, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: owner %s index %d", domain.ErrPlotNotFound, ownerID, index)
	}
	return nil
}

func getPlot(ctx context.Context, q queryer, ownerID string, index int, forUpdate bool) (*domain.Plot, error) {
	id, err := parsePlayerUUID(ownerID, domain.ErrPlotNotFound)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + plotColumns + ` FROM plots WHERE owner_id = $1 AND plot_index = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanPlot(q.QueryRow(ctx, query, id, index))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: owner %s index %d", domain.ErrPlotNotFound, ownerID, index)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlot, err)
	}
	return p, nil
}
