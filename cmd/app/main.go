package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/StealFarm_Go/internal/bootstrap"
	"github.com/osse101/StealFarm_Go/internal/clock"
	"github.com/osse101/StealFarm_Go/internal/config"
	"github.com/osse101/StealFarm_Go/internal/database"
	"github.com/osse101/StealFarm_Go/internal/server"
)

// @title StealFarm API
// @version 1.0
// @description Social farming game: plant, harvest and steal from friends.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)
	bootstrap.LogStartup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:       cfg.GetDBConnString(),
		MaxConns:         cfg.DBMaxConns,
		MaxConnIdle:      cfg.DBMaxConnIdle,
		MaxConnLifetime:  cfg.DBMaxConnLifetime,
		StatementTimeout: cfg.DBQueryTimeout,
	})
	if err != nil {
		return err
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return err
	}

	crops, err := bootstrap.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		pool.Close()
		return err
	}

	services, err := bootstrap.InitializeServices(bootstrap.ServiceDependencies{
		Repos:        bootstrap.InitializeRepositories(pool),
		Crops:        crops,
		Clock:        clock.NewRealClock(),
		EventBus:     bootstrap.InitializeEventSystem(),
		AuthSecret:   cfg.AuthSecret,
		AuthTokenTTL: cfg.AuthTokenTTL,
	})
	if err != nil {
		pool.Close()
		return err
	}

	srv := server.NewServer(server.Options{
		Port:              cfg.Port,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		TrustedProxies:    cfg.TrustedProxies,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		RequestTimeout:    cfg.DBQueryTimeout,
	}, pool, services, crops)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.DefaultShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server: srv,
		DBPool: pool,
	})
	return runErr
}
