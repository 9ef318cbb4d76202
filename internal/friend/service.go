package friend

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/StealFarm_Go/internal/clock"
	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/logger"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

// Service defines the friend directory
type Service interface {
	List(ctx context.Context, playerID string) ([]domain.Friend, error)
	Search(ctx context.Context, playerID, keyword string) ([]domain.SearchResult, error)
	Add(ctx context.Context, playerID, friendID string) (*domain.Player, error)
	Remove(ctx context.Context, playerID, friendID string) error
	AreFriends(ctx context.Context, playerID, otherID string) (bool, error)
}

type service struct {
	repo       repository.Friend
	playerRepo repository.Player
	clock      clock.Clock
}

// NewService creates a new friend service
func NewService(repo repository.Friend, playerRepo repository.Player, clk clock.Clock) Service {
	return &service{repo: repo, playerRepo: playerRepo, clock: clk}
}

// List returns the player's friends, newest first
func (s *service) List(ctx context.Context, playerID string) ([]domain.Friend, error) {
	friends, err := s.repo.ListFriends(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

// Search finds players by username substring, excluding the caller
func (s *service) Search(ctx context.Context, playerID, keyword string) ([]domain.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword is required", domain.ErrInvalidInput)
	}

	players, err := s.playerRepo.SearchPlayers(ctx, keyword, playerID, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}

	friends, err := s.repo.ListFriends(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	friendIDs := make(map[string]bool, len(friends))
	for _, f := range friends {
		friendIDs[f.ID] = true
	}

	results := make([]domain.SearchResult, 0, len(players))
	for _, p := range players {
		results = append(results, domain.SearchResult{
			ID:       p.ID,
			Username: p.Username,
			Level:    p.Level,
			IsFriend: friendIDs[p.ID],
		})
	}
	return results, nil
}

// Add creates a symmetric friendship and returns the new friend
func (s *service) Add(ctx context.Context, playerID, friendID string) (*domain.Player, error) {
	if friendID == "" {
		return nil, fmt.Errorf("%w: friend id is required", domain.ErrInvalidInput)
	}
	if friendID == playerID {
		return nil, domain.ErrCannotFriendSelf
	}

	friend, err := s.playerRepo.GetPlayerByID(ctx, friendID)
	if err != nil {
		return nil, err
	}

	already, err := s.repo.AreFriends(ctx, playerID, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if already {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyFriends, friend.Username)
	}

	if err := s.repo.AddFriendship(ctx, playerID, friendID, s.clock.Now()); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgFriendAdded, "playerID", playerID, "friendID", friendID)
	return friend, nil
}

// Remove deletes the friendship in both directions
func (s *service) Remove(ctx context.Context, playerID, friendID string) error {
	removed, err := s.repo.RemoveFriendship(ctx, playerID, friendID)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: %s", domain.ErrNotFriends, friendID)
	}

	logger.FromContext(ctx).Info(LogMsgFriendRemoved, "playerID", playerID, "friendID", friendID)
	return nil
}

// AreFriends reports whether the two players are friends
func (s *service) AreFriends(ctx context.Context, playerID, otherID string) (bool, error) {
	return s.repo.AreFriends(ctx, playerID, otherID)
}
