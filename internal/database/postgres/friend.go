package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

// FriendRepository implements repository.Friend for PostgreSQL
type FriendRepository struct {
	db *pgxpool.Pool
}

var _ repository.Friend = (*FriendRepository)(nil)

// NewFriendRepository creates a new FriendRepository
func NewFriendRepository(db *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{db: db}
}

// AreFriends reports false for ids that are not valid players
func (r *FriendRepository) AreFriends(ctx context.Context, playerID, otherID string) (bool, error) {
	a, err := parsePlayerUUID(playerID, domain.ErrPlayerNotFound)
	if err != nil {
		return false, nil
	}
	b, err := parsePlayerUUID(otherID, domain.ErrPlayerNotFound)
	if err != nil {
		return false, nil
	}
	var exists bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM friendships WHERE player_id = $1 AND friend_id = $2)`,
		a, b).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckFriendship, err)
	}
	return exists, nil
}

// ListFriends returns friends newest first
func (r *FriendRepository) ListFriends(ctx context.Context, playerID string) ([]domain.Friend, error) {
	id, err := parsePlayerUUID(playerID, domain.ErrPlayerNotFound)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT p.player_id::text, p.username, p.level, f.created_at
		FROM friendships f
		JOIN players p ON p.player_id = f.friend_id
		WHERE f.player_id = $1
		ORDER BY f.created_at DESC, p.player_id
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListFriends, err)
	}
	defer rows.Close()

	friends := make([]domain.Friend, 0)
	for rows.Next() {
		var f domain.Friend
		if err := rows.Scan(&f.ID, &f.Username, &f.Level, &f.FriendSince); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListFriends, err)
		}
		f.FriendSince = f.FriendSince.UTC()
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

// AddFriendship inserts both directions in one transaction
func (r *FriendRepository) AddFriendship(ctx context.Context, playerID, friendID string, at time.Time) error {
	a, err := parsePlayerUUID(playerID, domain.ErrPlayerNotFound)
	if err != nil {
		return err
	}
	b, err := parsePlayerUUID(friendID, domain.ErrPlayerNotFound)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	query := `
		INSERT INTO friendships (player_id, friend_id, created_at)
		VALUES ($1, $2, $3), ($2, $1, $3)
	`
	if _, err := tx.Exec(ctx, query, a, b, at.UTC()); err != nil {
		switch {
		case isPgError(err, PgErrorCodeUniqueViolation):
			return fmt.Errorf("%w: %s", domain.ErrAlreadyFriends, friendID)
		case isPgError(err, PgErrorCodeForeignKeyViolation):
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, friendID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddFriendship, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// RemoveFriendship deletes both directions and reports whether any row was removed
func (r *FriendRepository) RemoveFriendship(ctx context.Context, playerID, friendID string) (bool, error) {
	a, err := parsePlayerUUID(playerID, domain.ErrPlayerNotFound)
	if err != nil {
		return false, nil
	}
	b, err := parsePlayerUUID(friendID, domain.ErrPlayerNotFound)
	if err != nil {
		return false, nil
	}
	tag, err := r.db.Exec(ctx, `
		DELETE FROM friendships
		WHERE (player_id = $1 AND friend_id = $2) OR (player_id = $2 AND friend_id = $1)
	`, a, b)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToRemoveFriendship, err)
	}
	return tag.RowsAffected() > 0, nil
}
