package repository

import (
	"context"
	"time"

	"github.com/osse101/StealFarm_Go/internal/domain"
)

// Friend defines the interface for the symmetric friend relation
type Friend interface {
	AreFriends(ctx context.Context, playerID, otherID string) (bool, error)
	// ListFriends returns friends newest first
	ListFriends(ctx context.Context, playerID string) ([]domain.Friend, error)
	// AddFriendship stores both directions. Returns domain.ErrAlreadyFriends on conflict.
	AddFriendship(ctx context.Context, playerID, friendID string, at time.Time) error
	// RemoveFriendship deletes both directions and reports whether anything was removed
	RemoveFriendship(ctx context.Context, playerID, friendID string) (bool, error)
}
