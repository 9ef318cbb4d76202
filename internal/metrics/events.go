package metrics

import (
	"context"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/event"
	"github.com/osse101/StealFarm_Go/internal/logger"
)

// EventMetricsCollector subscribes to farm events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all farm events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.CropPlanted,
		event.CropHarvested,
		event.CropStolen,
		event.PlayerLeveledUp,
	}
	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent updates metrics for one event. Undecodable payloads are counted
// as handler errors but never fail the publisher.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := record(evt); err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func record(evt event.Event) error {
	switch evt.Type {
	case event.CropPlanted:
		p, err := event.DecodePayload[domain.CropPlantedPayload](evt.Payload)
		if err != nil {
			return err
		}
		CropsPlanted.WithLabelValues(p.CropID).Inc()
		CoinsSpent.Add(float64(p.Price))

	case event.CropHarvested:
		p, err := event.DecodePayload[domain.CropHarvestedPayload](evt.Payload)
		if err != nil {
			return err
		}
		CropsHarvested.WithLabelValues(p.CropID).Inc()
		CoinsHarvested.Add(float64(p.HarvestAmount))

	case event.CropStolen:
		p, err := event.DecodePayload[domain.CropStolenPayload](evt.Payload)
		if err != nil {
			return err
		}
		CropsStolen.WithLabelValues(p.CropID).Inc()
		CoinsStolen.Add(float64(p.Amount))

	case event.PlayerLeveledUp:
		p, err := event.DecodePayload[domain.PlayerLeveledUpPayload](evt.Payload)
		if err != nil {
			return err
		}
		LevelUps.Add(float64(p.NewLevel - p.OldLevel))
	}
	return nil
}
