package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

const playerColumns = `player_id::text, username, password_hash, coins, level, exp, created_at`

// PlayerRepository implements repository.Player for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

var _ repository.Player = (*PlayerRepository)(nil)

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetPlayerByID returns domain.ErrPlayerNotFound for unknown ids
func (r *PlayerRepository) GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	return getPlayer(ctx, r.db, playerID, false)
}

// GetPlayerByUsername finds a player by exact username
func (r *PlayerRepository) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE username = $1`
	p, err := scanPlayer(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, username)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlayer, err)
	}
	return p, nil
}

// SearchPlayers returns players whose username contains keyword, case-insensitively
func (r *PlayerRepository) SearchPlayers(ctx context.Context, keyword, excludeID string, limit int) ([]domain.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE username ILIKE '%' || $1 || '%' ESCAPE '\'
		  AND player_id::text <> $2
		ORDER BY username
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, escapeLike(keyword), excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSearchPlayers, err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSearchPlayers, err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// BeginPlayerTx starts a registration transaction
func (r *PlayerRepository) BeginPlayerTx(ctx context.Context) (repository.PlayerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &playerTx{tx: tx}, nil
}

// playerTx implements repository.PlayerTx
type playerTx struct {
	tx pgx.Tx
}

func (t *playerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *playerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *playerTx) CreatePlayer(ctx context.Context, player *domain.Player) error {
	id, err := parsePlayerUUID(player.ID, domain.ErrInvalidInput)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO players (player_id, username, password_hash, coins, level, exp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = t.tx.Exec(ctx, query, id, player.Username, player.PasswordHash,
		player.Coins, player.Level, player.Exp, player.CreatedAt)
	if err != nil {
		if isPgError(err, PgErrorCodeUniqueViolation) {
			return fmt.Errorf("%w: %s", domain.ErrUsernameTaken, player.Username)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPlayer, err)
	}
	return nil
}

func (t *playerTx) CreatePlots(ctx context.Context, playerID string, count int) error {
	id, err := parsePlayerUUID(playerID, domain.ErrPlayerNotFound)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO plots (owner_id, plot_index)
		SELECT $1, i FROM generate_series(0, $2::int - 1) AS i
	`
	if _, err := t.tx.Exec(ctx, query, id, count); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreatePlots, err)
	}
	return nil
}

// getPlayer loads one player, optionally locking the row
func getPlayer(ctx context.Context, q queryer, playerID string, forUpdate bool) (*domain.Player, error) {
	id, err := parsePlayerUUID(playerID, domain.ErrPlayerNotFound)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanPlayer(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlayer, err)
	}
	return p, nil
}
