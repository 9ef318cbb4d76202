package bootstrap

import "time"

// =============================================================================
// Service Configuration
// =============================================================================

const (
	// DefaultShutdownTimeout bounds how long in-flight requests get to finish
	DefaultShutdownTimeout = 15 * time.Second
)

// =============================================================================
// Startup Messages
// =============================================================================

const (
	LogMsgStartingStealFarm   = "Starting StealFarm"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgCatalogLoaded       = "Crop catalog loaded"
	LogMsgServicesInitialized = "Services initialized"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
)

// =============================================================================
// Error Messages
// =============================================================================

const (
	ErrMsgFailedLoadCatalog = "failed to load crop catalog"
	ErrMsgFailedInitTokens  = "failed to initialize session tokens"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgClosingDatabase      = "Closing database pool"
)
