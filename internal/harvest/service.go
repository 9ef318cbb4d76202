package harvest

import (
	"context"
	"fmt"

	"github.com/osse101/StealFarm_Go/internal/catalog"
	"github.com/osse101/StealFarm_Go/internal/clock"
	"github.com/osse101/StealFarm_Go/internal/concurrency"
	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/event"
	"github.com/osse101/StealFarm_Go/internal/logger"
	"github.com/osse101/StealFarm_Go/internal/plot"
	"github.com/osse101/StealFarm_Go/internal/progression"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

// Service defines the harvest business logic
type Service interface {
	// Harvest settles a ready plot, empties it and pays the owner
	Harvest(ctx context.Context, playerID string, index int) (*domain.HarvestResult, error)
}

type service struct {
	repo   repository.Farm
	crops  *catalog.Catalog
	engine *plot.Engine
	ledger *progression.Ledger
	clock  clock.Clock
	locks  *concurrency.LockManager
	bus    event.Bus
}

// NewService creates a new harvest service
func NewService(
	repo repository.Farm,
	crops *catalog.Catalog,
	ledger *progression.Ledger,
	clk clock.Clock,
	locks *concurrency.LockManager,
	bus event.Bus,
) Service {
	return &service{
		repo:   repo,
		crops:  crops,
		engine: plot.NewEngine(crops),
		ledger: ledger,
		clock:  clk,
		locks:  locks,
		bus:    bus,
	}
}

// Harvest resets the plot, credits coins and adds experience in one transaction.
// A retry after a committed harvest finds an empty plot and fails with ErrNothingToHarvest.
func (s *service) Harvest(ctx context.Context, playerID string, index int) (*domain.HarvestResult, error) {
	log := logger.FromContext(ctx)

	var (
		result  *domain.HarvestResult
		thieves int
	)
	err := s.locks.WithLock(ctx, concurrency.PlotKey(playerID, index), func() error {
		var err error
		result, thieves, err = s.executeHarvestTransaction(ctx, playerID, index)
		return err
	})
	if err != nil {
		log.Info(LogMsgHarvestRejected, "playerID", playerID, "plotIndex", index, "error", err)
		return nil, err
	}

	log.Info(LogMsgHarvested,
		"playerID", playerID,
		"plotIndex", index,
		"crop", result.CropID,
		"harvestAmount", result.HarvestAmount,
		"stolenAmount", result.StolenAmount,
		"thieves", thieves)

	event.PublishQuietly(ctx, s.bus, event.NewCropHarvestedEvent(playerID, index, result.CropID, result.Settlement, thieves))
	progression.AnnounceLevelUp(ctx, s.bus, result.Level)
	return result, nil
}

func (s *service) executeHarvestTransaction(ctx context.Context, playerID string, index int) (*domain.HarvestResult, int, error) {
	tx, err := s.repo.BeginFarmTx(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetPlotForUpdate(ctx, playerID, index)
	if err != nil {
		return nil, 0, err
	}

	view := s.engine.DeriveState(*p, s.clock.Now())
	settlement, err := Settle(view, s.crops.Rules())
	if err != nil {
		return nil, 0, err
	}

	if err := tx.ResetPlot(ctx, playerID, index); err != nil {
		return nil, 0, fmt.Errorf("failed to reset plot: %w", err)
	}

	coins, err := s.ledger.CreditCoins(ctx, tx, playerID, settlement.HarvestAmount)
	if err != nil {
		return nil, 0, err
	}

	level, err := s.ledger.AddExperience(ctx, tx, playerID, settlement.ExpAmount)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit: %w", err)
	}

	return &domain.HarvestResult{
		PlotIndex:  index,
		CropID:     view.Crop.ID,
		Settlement: settlement,
		Coins:      coins,
		Level:      level,
	}, len(view.StolenBy), nil
}
