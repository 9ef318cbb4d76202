package bootstrap

import (
	"log/slog"

	"github.com/osse101/StealFarm_Go/internal/event"
	"github.com/osse101/StealFarm_Go/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus and subscribes the metrics collector
func InitializeEventSystem() *event.MemoryBus {
	eventBus := event.NewMemoryBus()

	metrics.NewEventMetricsCollector().Register(eventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	slog.Info(LogMsgEventSystemInitialized)
	return eventBus
}
