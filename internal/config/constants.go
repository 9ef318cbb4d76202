package config

import "time"

// Defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "steal-farm"
	DefaultVersion     = "dev"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdle     = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultDBQueryTimeout    = 5 * time.Second

	DefaultAuthTokenTTL = 7 * 24 * time.Hour
	MinAuthSecretLength = 16

	DefaultRateLimitRPS   = 10
	DefaultRateLimitBurst = 20
)
