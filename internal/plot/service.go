package plot

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/StealFarm_Go/internal/catalog"
	"github.com/osse101/StealFarm_Go/internal/clock"
	"github.com/osse101/StealFarm_Go/internal/concurrency"
	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/event"
	"github.com/osse101/StealFarm_Go/internal/logger"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

// Service defines the farm view and planting interface
type Service interface {
	GetFarm(ctx context.Context, playerID string) (*domain.Farm, error)
	VisitFarm(ctx context.Context, visitorID, ownerID string) (*domain.Farm, error)
	GetPlot(ctx context.Context, ownerID string, index int) (*domain.PlotView, error)
	Plant(ctx context.Context, playerID string, index int, cropID string) (*domain.PlantResult, error)
}

type service struct {
	farmRepo   repository.Farm
	playerRepo repository.Player
	friendRepo repository.Friend
	crops      *catalog.Catalog
	engine     *Engine
	clock      clock.Clock
	locks      *concurrency.LockManager
	bus        event.Bus
}

// NewService creates a new plot service
func NewService(
	farmRepo repository.Farm,
	playerRepo repository.Player,
	friendRepo repository.Friend,
	crops *catalog.Catalog,
	clk clock.Clock,
	locks *concurrency.LockManager,
	bus event.Bus,
) Service {
	return &service{
		farmRepo:   farmRepo,
		playerRepo: playerRepo,
		friendRepo: friendRepo,
		crops:      crops,
		engine:     NewEngine(crops),
		clock:      clk,
		locks:      locks,
		bus:        bus,
	}
}

// GetFarm returns the player's own farm with the crop list
func (s *service) GetFarm(ctx context.Context, playerID string) (*domain.Farm, error) {
	farm, err := s.loadFarm(ctx, playerID)
	if err != nil {
		return nil, err
	}
	farm.IsOwner = true
	farm.Crops = s.crops.List()
	return farm, nil
}

// VisitFarm returns a friend's farm
func (s *service) VisitFarm(ctx context.Context, visitorID, ownerID string) (*domain.Farm, error) {
	if visitorID == ownerID {
		return s.GetFarm(ctx, ownerID)
	}

	friends, err := s.friendRepo.AreFriends(ctx, visitorID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if !friends {
		logger.FromContext(ctx).Info(LogMsgFarmVisitDenied, "visitorID", visitorID, "ownerID", ownerID)
		return nil, fmt.Errorf("%w: cannot visit %s", domain.ErrNotFriends, ownerID)
	}

	return s.loadFarm(ctx, ownerID)
}

func (s *service) loadFarm(ctx context.Context, playerID string) (*domain.Farm, error) {
	player, err := s.playerRepo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	plots, err := s.farmRepo.GetPlots(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plots: %w", err)
	}

	return &domain.Farm{
		Player: player,
		Plots:  s.engine.DeriveAll(plots, s.clock.Now()),
	}, nil
}

// GetPlot returns one plot with derived state
func (s *service) GetPlot(ctx context.Context, ownerID string, index int) (*domain.PlotView, error) {
	p, err := s.farmRepo.GetPlot(ctx, ownerID, index)
	if err != nil {
		return nil, err
	}
	view := s.engine.DeriveState(*p, s.clock.Now())
	return &view, nil
}

// Plant debits the crop price and plants it on an empty plot
func (s *service) Plant(ctx context.Context, playerID string, index int, cropID string) (*domain.PlantResult, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: plot index %d", domain.ErrInvalidInput, index)
	}
	crop, ok := s.crops.Get(cropID)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", domain.ErrInvalidInput, domain.ErrUnknownCrop, cropID)
	}

	var result *domain.PlantResult
	err := s.locks.WithLock(ctx, concurrency.PlotKey(playerID, index), func() error {
		var err error
		result, err = s.executePlantTransaction(ctx, playerID, index, crop)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCropPlanted,
		"playerID", playerID,
		"plotIndex", index,
		"crop", crop.ID,
		"coins", result.Coins)

	event.PublishQuietly(ctx, s.bus, event.NewCropPlantedEvent(playerID, index, crop))
	return result, nil
}

func (s *service) executePlantTransaction(ctx context.Context, playerID string, index int, crop *domain.CropDefinition) (*domain.PlantResult, error) {
	tx, err := s.farmRepo.BeginFarmTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Plot is locked before the player row on every farm action
	p, plotErr := tx.GetPlotForUpdate(ctx, playerID, index)
	if plotErr != nil && !errors.Is(plotErr, domain.ErrPlotNotFound) {
		return nil, fmt.Errorf("failed to lock plot: %w", plotErr)
	}

	player, err := tx.GetPlayerForUpdate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.Coins < crop.Price {
		return nil, fmt.Errorf("%w: need %d coins, have %d", domain.ErrInsufficientFunds, crop.Price, player.Coins)
	}
	if plotErr != nil {
		return nil, plotErr
	}

	if !p.IsEmpty() {
		if _, known := s.crops.Get(*p.CropID); known {
			return nil, fmt.Errorf("%w: plot %d", domain.ErrPlotOccupied, index)
		}
		// Crops removed from the catalog read as empty, so they may be planted over
		if err := tx.ResetPlot(ctx, playerID, index); err != nil {
			return nil, fmt.Errorf("failed to clear plot: %w", err)
		}
		logger.FromContext(ctx).Warn(LogMsgStaleCropCleared, "playerID", playerID, "plotIndex", index, "crop", *p.CropID)
	}

	coins, err := tx.AddCoins(ctx, playerID, -crop.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to debit coins: %w", err)
	}

	planted, err := tx.PlantCrop(ctx, playerID, index, crop.ID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to plant crop: %w", err)
	}
	if !planted {
		return nil, fmt.Errorf("%w: plot %d", domain.ErrPlotOccupied, index)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &domain.PlantResult{PlotIndex: index, CropID: crop.ID, Coins: coins}, nil
}
