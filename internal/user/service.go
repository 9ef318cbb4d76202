package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/StealFarm_Go/internal/auth"
	"github.com/osse101/StealFarm_Go/internal/clock"
	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/logger"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

// Service defines account registration, login and profile lookup
type Service interface {
	Register(ctx context.Context, username, password string) (*domain.Session, error)
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	GetProfile(ctx context.Context, playerID string) (*domain.Player, error)
	// Authenticate resolves a bearer token to a player id
	Authenticate(ctx context.Context, token string) (string, error)
}

type service struct {
	repo      repository.Player
	tokens    *auth.Tokens
	passwords *auth.Passwords
	rules     domain.GameRules
	clock     clock.Clock
	known     *playerCache
}

// NewService creates a new user service
func NewService(
	repo repository.Player,
	tokens *auth.Tokens,
	passwords *auth.Passwords,
	rules domain.GameRules,
	clk clock.Clock,
) Service {
	return &service{
		repo:      repo,
		tokens:    tokens,
		passwords: passwords,
		rules:     rules,
		clock:     clk,
		known:     newPlayerCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

// Register creates a player with the starting balance and empty plots
func (s *service) Register(ctx context.Context, username, password string) (*domain.Session, error) {
	log := logger.FromContext(ctx)

	username = NormalizeUsername(username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	_, err := s.repo.GetPlayerByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", domain.ErrUsernameTaken, username)
	case !errors.Is(err, domain.ErrPlayerNotFound):
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	player := &domain.Player{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Coins:        s.rules.InitialCoins,
		Level:        1,
		Exp:          0,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.createPlayer(ctx, player); err != nil {
		log.Warn(LogMsgRegisterFailed, "username", username, "error", err)
		return nil, err
	}

	log.Info(LogMsgPlayerRegistered, "playerID", player.ID, "username", username)
	s.known.Remember(player.ID)
	return s.newSession(player)
}

func (s *service) createPlayer(ctx context.Context, player *domain.Player) error {
	tx, err := s.repo.BeginPlayerTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// A concurrent registration of the same name surfaces here as ErrUsernameTaken
	if err := tx.CreatePlayer(ctx, player); err != nil {
		return err
	}
	if err := tx.CreatePlots(ctx, player.ID, s.rules.InitialPlots); err != nil {
		return fmt.Errorf("failed to create plots: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Login checks credentials and issues a session token
func (s *service) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	log := logger.FromContext(ctx)
	username = NormalizeUsername(username)

	player, err := s.repo.GetPlayerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			log.Info(LogMsgLoginFailed, "username", username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if !s.passwords.Verify(password, player.PasswordHash) {
		log.Info(LogMsgLoginFailed, "username", username)
		return nil, domain.ErrInvalidCredentials
	}

	log.Info(LogMsgLoginSucceeded, "playerID", player.ID)
	return s.newSession(player)
}

// GetProfile returns the player record
func (s *service) GetProfile(ctx context.Context, playerID string) (*domain.Player, error) {
	return s.repo.GetPlayerByID(ctx, playerID)
}

// Authenticate verifies a token and that its player still exists
func (s *service) Authenticate(ctx context.Context, token string) (string, error) {
	playerID, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}
	if s.known.Known(playerID) {
		return playerID, nil
	}
	if _, err := s.repo.GetPlayerByID(ctx, playerID); err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			return "", fmt.Errorf("%w: player no longer exists", domain.ErrUnauthorized)
		}
		return "", err
	}
	s.known.Remember(playerID)
	return playerID, nil
}

func (s *service) newSession(player *domain.Player) (*domain.Session, error) {
	token, expires, err := s.tokens.Issue(player.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: token, ExpiresAt: expires, Player: player}, nil
}
