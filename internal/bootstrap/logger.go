package bootstrap

import (
	"log/slog"

	"github.com/osse101/StealFarm_Go/internal/config"
)

// LogStartup records the effective configuration. Secrets are never logged.
func LogStartup(cfg *config.Config) {
	slog.Info(LogMsgStartingStealFarm,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"db_max_conns", cfg.DBMaxConns,
		"db_query_timeout", cfg.DBQueryTimeout,
		"port", cfg.Port,
		"token_ttl", cfg.AuthTokenTTL,
		"rate_limit_rps", cfg.RateLimitRPS,
		"rate_limit_burst", cfg.RateLimitBurst,
		"cors_origin", cfg.CORSAllowedOrigin,
		"catalog_path", catalogSource(cfg.CatalogPath))
}
