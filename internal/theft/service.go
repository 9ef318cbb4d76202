package theft

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

// Service defines the theft interface
type Service interface {
	// Steal takes a share of a friend's ready crop
	Steal(ctx context.Context, thiefID, ownerID string, index int) (*domain.StealResult, error)
}

type service struct {
	farmRepo   repository.Farm
	friendRepo repository.Friend
	crops      *catalog.Catalog
	engine     *plot.Engine
	ledger     *progression.Ledger
	clock      clock.Clock
	locks      *concurrency.LockManager
	bus        event.Bus
}

// NewService creates a new theft service
func NewService(
	farmRepo repository.Farm,
	friendRepo repository.Friend,
	crops *catalog.Catalog,
	ledger *progression.Ledger,
	clk clock.Clock,
	locks *concurrency.LockManager,
	bus event.Bus,
) Service {
	return &service{
		farmRepo:   farmRepo,
		friendRepo: friendRepo,
		crops:      crops,
		engine:     plot.NewEngine(crops),
		ledger:     ledger,
		clock:      clk,
		locks:      locks,
		bus:        bus,
	}
}

// Steal records the thief on the plot and credits them in one transaction.
// Thieves earn no experience.
func (s *service) Steal(ctx context.Context, thiefID, ownerID string, index int) (*domain.StealResult, error) {
	log := logger.FromContext(ctx)

	if thiefID == ownerID {
		return nil, fmt.Errorf("%w: cannot steal from your own farm", domain.ErrInvalidInput)
	}

	friends, err := s.friendRepo.AreFriends(ctx, thiefID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if !friends {
		log.Info(LogMsgStealRejected, "thiefID", thiefID, "ownerID", ownerID, "reason", domain.ErrMsgNotFriends)
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFriends, ownerID)
	}

	// Unlocked pre-check; most rejections never open a transaction
	p, err := s.farmRepo.GetPlot(ctx, ownerID, index)
	if err != nil {
		return nil, err
	}
	if _, err := Authorize(s.engine.DeriveState(*p, s.clock.Now()), thiefID, s.crops.Rules()); err != nil {
		log.Info(LogMsgStealRejected, "thiefID", thiefID, "ownerID", ownerID, "plotIndex", index, "error", err)
		return nil, err
	}

	var result *domain.StealResult
	err = s.locks.WithLock(ctx, concurrency.PlotKey(ownerID, index), func() error {
		var err error
		result, err = s.executeStealTransaction(ctx, thiefID, ownerID, index)
		return err
	})
	if err != nil {
		log.Info(LogMsgStealRejected, "thiefID", thiefID, "ownerID", ownerID, "plotIndex", index, "error", err)
		return nil, err
	}

	log.Info(LogMsgCropStolen,
		"thiefID", thiefID,
		"ownerID", ownerID,
		"plotIndex", index,
		"crop", result.CropID,
		"amount", result.Amount)

	event.PublishQuietly(ctx, s.bus, event.NewCropStolenEvent(thiefID, ownerID, index, result.CropID, result.Amount))
	return result, nil
}

func (s *service) executeStealTransaction(ctx context.Context, thiefID, ownerID string, index int) (*domain.StealResult, error) {
	tx, err := s.farmRepo.BeginFarmTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetPlotForUpdate(ctx, ownerID, index)
	if err != nil {
		return nil, err
	}

	// Re-check under the row lock; the plot may have been harvested or robbed meanwhile
	view := s.engine.DeriveState(*p, s.clock.Now())
	amount, err := Authorize(view, thiefID, s.crops.Rules())
	if err != nil {
		return nil, err
	}

	if err := tx.RecordTheft(ctx, ownerID, index, thiefID); err != nil {
		return nil, fmt.Errorf("failed to record theft: %w", err)
	}

	coins, err := s.ledger.CreditCoins(ctx, tx, thiefID, amount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &domain.StealResult{
		OwnerID:   ownerID,
		PlotIndex: index,
		CropID:    view.Crop.ID,
		Amount:    amount,
		Coins:     coins,
	}, nil
}
