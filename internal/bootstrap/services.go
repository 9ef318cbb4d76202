package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/StealFarm_Go/internal/auth"
	"github.com/osse101/StealFarm_Go/internal/catalog"
	"github.com/osse101/StealFarm_Go/internal/clock"
	"github.com/osse101/StealFarm_Go/internal/concurrency"
	"github.com/osse101/StealFarm_Go/internal/event"
	"github.com/osse101/StealFarm_Go/internal/friend"
	"github.com/osse101/StealFarm_Go/internal/harvest"
	"github.com/osse101/StealFarm_Go/internal/plot"
	"github.com/osse101/StealFarm_Go/internal/progression"
	"github.com/osse101/StealFarm_Go/internal/server"
	"github.com/osse101/StealFarm_Go/internal/theft"
	"github.com/osse101/StealFarm_Go/internal/user"
)

// ServiceDependencies holds everything the game services are built from
type ServiceDependencies struct {
	Repos    *Repositories
	Crops    *catalog.Catalog
	Clock    clock.Clock
	EventBus event.Bus

	AuthSecret   string
	AuthTokenTTL time.Duration
	// PasswordCost is the bcrypt cost; zero uses the library default
	PasswordCost int
}

// LoadCatalog loads the crop catalog from path, or the built-in one when path is empty
func LoadCatalog(path string) (*catalog.Catalog, error) {
	crops, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	rules := crops.Rules()
	slog.Info(LogMsgCatalogLoaded,
		"crops", len(crops.IDs()),
		"initial_coins", rules.InitialCoins,
		"initial_plots", rules.InitialPlots,
		"source", catalogSource(path))
	return crops, nil
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// InitializeServices wires the game services.
// Plot, harvest and theft share one lock manager so plot locks are global to the process.
func InitializeServices(deps ServiceDependencies) (server.Services, error) {
	tokens, err := auth.NewTokens(deps.AuthSecret, deps.AuthTokenTTL, deps.Clock)
	if err != nil {
		return server.Services{}, fmt.Errorf("%s: %w", ErrMsgFailedInitTokens, err)
	}

	rules := deps.Crops.Rules()
	locks := concurrency.NewLockManager()
	ledger := progression.NewLedger(rules)
	repos := deps.Repos

	svc := server.Services{
		User:    user.NewService(repos.Player, tokens, auth.NewPasswords(deps.PasswordCost), rules, deps.Clock),
		Plot:    plot.NewService(repos.Farm, repos.Player, repos.Friend, deps.Crops, deps.Clock, locks, deps.EventBus),
		Harvest: harvest.NewService(repos.Farm, deps.Crops, ledger, deps.Clock, locks, deps.EventBus),
		Theft:   theft.NewService(repos.Farm, repos.Friend, deps.Crops, ledger, deps.Clock, locks, deps.EventBus),
		Friend:  friend.NewService(repos.Friend, repos.Player, deps.Clock),
	}

	slog.Info(LogMsgServicesInitialized)
	return svc, nil
}
