package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/metrics"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata interface{} `json:"metadata"`
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus.
// Dispatch is synchronous and ordered: handlers run in subscription order,
// and events published within one Advance tick are observed in the order
// their triggering state changes occurred.
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

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()

	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			metrics.EventHandlerErrors.WithLabelValues(string(event.Type)).Inc()
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler error(s) for event %s: %v", len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe registers a handler for an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Typed event payloads for type safety

// LedgerChangedPayloadV1 carries a material quantity change.
type LedgerChangedPayloadV1 struct {
	Material domain.MaterialID `json:"material"`
	Old      int               `json:"old"`
	New      int               `json:"new"`
}

// StationUnlockedPayloadV1 fires exactly once per station unlock.
type StationUnlockedPayloadV1 struct {
	Station domain.StationKind `json:"station"`
}

// StationLeveledPayloadV1 carries a station level change.
type StationLeveledPayloadV1 struct {
	Station  domain.StationKind `json:"station"`
	OldLevel int                `json:"old_level"`
	NewLevel int                `json:"new_level"`
}

// MasteryLevelUpPayloadV1 carries a mastery level change.
type MasteryLevelUpPayloadV1 struct {
	Station  domain.StationKind `json:"station"`
	OldLevel int                `json:"old_level"`
	NewLevel int                `json:"new_level"`
	XP       int64              `json:"xp"`
}

// CraftStartedPayloadV1 carries an accepted craft request.
type CraftStartedPayloadV1 struct {
	JobID       string             `json:"job_id"`
	RecipeID    string             `json:"recipe_id"`
	Station     domain.StationKind `json:"station"`
	Quantity    int                `json:"quantity"`
	CompletesAt int64              `json:"completes_at"` // unix seconds
}

// CraftCompletedPayloadV1 carries a resolved job and its produced units.
type CraftCompletedPayloadV1 struct {
	JobID    string                `json:"job_id"`
	RecipeID string                `json:"recipe_id"`
	Station  domain.StationKind    `json:"station"`
	Quantity int                   `json:"quantity"`
	Produced []domain.ProducedUnit `json:"produced"`
	XPAward  int                   `json:"xp_award"`
}

// CraftCancelledPayloadV1 carries a cancelled job and its refund.
type CraftCancelledPayloadV1 struct {
	JobID    string                       `json:"job_id"`
	RecipeID string                       `json:"recipe_id"`
	Refunded map[domain.MaterialID]int    `json:"refunded"`
}

// OutputProducedPayloadV1 is the sink event for non-material outputs
// (Equipment and Currency), consumed by the respective external collaborators.
type OutputProducedPayloadV1 struct {
	Kind     domain.ResultKind  `json:"kind"`
	TargetID string             `json:"target_id"`
	Amount   int                `json:"amount"`
	Quality  domain.QualityTier `json:"quality"`
}

// RecipeUnlockedPayloadV1 carries a newly known recipe.
type RecipeUnlockedPayloadV1 struct {
	RecipeID string `json:"recipe_id"`
}

// Type-safe event constructors

// NewLedgerChangedEvent creates a ledger change notification.
func NewLedgerChangedEvent(material domain.MaterialID, oldQty, newQty int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeLedgerChanged),
		Payload: LedgerChangedPayloadV1{
			Material: material,
			Old:      oldQty,
			New:      newQty,
		},
		Metadata: map[string]interface{}{
			domain.MetadataKeyMaterial: string(material),
		},
	}
}

// NewStationUnlockedEvent creates a station unlock event.
func NewStationUnlockedEvent(station domain.StationKind) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeStationUnlocked),
		Payload: StationUnlockedPayloadV1{Station: station},
		Metadata: map[string]interface{}{
			domain.MetadataKeyStation: station.String(),
		},
	}
}

// NewStationLeveledEvent creates a station level-change event.
func NewStationLeveledEvent(station domain.StationKind, oldLevel, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeStationLeveled),
		Payload: StationLeveledPayloadV1{
			Station:  station,
			OldLevel: oldLevel,
			NewLevel: newLevel,
		},
		Metadata: map[string]interface{}{
			domain.MetadataKeyStation: station.String(),
		},
	}
}

// NewMasteryLevelUpEvent creates a mastery level-up event.
func NewMasteryLevelUpEvent(station domain.StationKind, oldLevel, newLevel int, xp int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeMasteryLevelUp),
		Payload: MasteryLevelUpPayloadV1{
			Station:  station,
			OldLevel: oldLevel,
			NewLevel: newLevel,
			XP:       xp,
		},
		Metadata: map[string]interface{}{
			domain.MetadataKeyStation: station.String(),
		},
	}
}

// NewCraftStartedEvent creates a craft accepted event.
func NewCraftStartedEvent(job domain.QueueItem) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeCraftStarted),
		Payload: CraftStartedPayloadV1{
			JobID:       job.ID.String(),
			RecipeID:    job.RecipeID,
			Station:     job.Station,
			Quantity:    job.Quantity,
			CompletesAt: job.CompletesAt.Unix(),
		},
		Metadata: map[string]interface{}{
			domain.MetadataKeyRecipe:   job.RecipeID,
			domain.MetadataKeyQuantity: job.Quantity,
		},
	}
}

// NewCraftCompletedEvent creates a craft resolution event.
func NewCraftCompletedEvent(job domain.QueueItem, produced []domain.ProducedUnit, xpAward int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeCraftCompleted),
		Payload: CraftCompletedPayloadV1{
			JobID:    job.ID.String(),
			RecipeID: job.RecipeID,
			Station:  job.Station,
			Quantity: job.Quantity,
			Produced: produced,
			XPAward:  xpAward,
		},
		Metadata: map[string]interface{}{
			domain.MetadataKeyRecipe:   job.RecipeID,
			domain.MetadataKeyQuantity: job.Quantity,
		},
	}
}

// NewCraftCancelledEvent creates a craft cancellation event.
func NewCraftCancelledEvent(job domain.QueueItem, refunded map[domain.MaterialID]int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeCraftCancelled),
		Payload: CraftCancelledPayloadV1{
			JobID:    job.ID.String(),
			RecipeID: job.RecipeID,
			Refunded: refunded,
		},
		Metadata: map[string]interface{}{
			domain.MetadataKeyRecipe: job.RecipeID,
		},
	}
}

// NewOutputProducedEvent creates the sink event for equipment/currency outputs.
func NewOutputProducedEvent(unit domain.ProducedUnit) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeOutputProduced),
		Payload: OutputProducedPayloadV1{
			Kind:     unit.Kind,
			TargetID: unit.TargetID,
			Amount:   unit.Amount,
			Quality:  unit.Quality,
		},
		Metadata: map[string]interface{}{
			domain.MetadataKeySource: "production",
		},
	}
}

// NewRecipeUnlockedEvent creates a recipe unlock event.
func NewRecipeUnlockedEvent(recipeID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeRecipeUnlocked),
		Payload: RecipeUnlockedPayloadV1{RecipeID: recipeID},
		Metadata: map[string]interface{}{
			domain.MetadataKeyRecipe: recipeID,
		},
	}
}
