package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Farm event types
const (
	CropPlanted     Type = "crop.planted"
	CropHarvested   Type = "crop.harvested"
	CropStolen      Type = "crop.stolen"
	PlayerLeveledUp Type = "player.leveled_up"
)

// NewCropPlantedEvent creates a crop planted event
func NewCropPlantedEvent(playerID string, plotIndex int, crop *domain.CropDefinition) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CropPlanted,
		Payload: domain.CropPlantedPayload{
			PlayerID:  playerID,
			PlotIndex: plotIndex,
			CropID:    crop.ID,
			Price:     crop.Price,
		},
	}
}

// NewCropHarvestedEvent creates a crop harvested event
func NewCropHarvestedEvent(playerID string, plotIndex int, cropID string, settlement domain.Settlement, thieves int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CropHarvested,
		Payload: domain.CropHarvestedPayload{
			PlayerID:      playerID,
			PlotIndex:     plotIndex,
			CropID:        cropID,
			HarvestAmount: settlement.HarvestAmount,
			StolenAmount:  settlement.StolenAmount,
			Thieves:       thieves,
		},
	}
}

// NewCropStolenEvent creates a crop stolen event
func NewCropStolenEvent(thiefID, ownerID string, plotIndex int, cropID string, amount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CropStolen,
		Payload: domain.CropStolenPayload{
			ThiefID:   thiefID,
			OwnerID:   ownerID,
			PlotIndex: plotIndex,
			CropID:    cropID,
			Amount:    amount,
		},
	}
}

// NewPlayerLeveledUpEvent creates a level up event
func NewPlayerLeveledUpEvent(result domain.LevelResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerLeveledUp,
		Payload: domain.PlayerLeveledUpPayload{
			PlayerID: result.PlayerID,
			OldLevel: result.OldLevel,
			NewLevel: result.NewLevel,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// PublishQuietly publishes and logs failures. Farm state is already committed
// when events go out, so a failing subscriber must not fail the request.
func PublishQuietly(ctx context.Context, bus Bus, evt Event) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}
