package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yumichan48/foxrunner/internal/domain"
)

func TestMemoryBus_PublishToSubscriber(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(Type(domain.EventTypeLedgerChanged), func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	err := bus.Publish(context.Background(), NewLedgerChangedEvent("iron_ore", 3, 5))
	require.NoError(t, err)

	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(LedgerChangedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, domain.MaterialID("iron_ore"), payload.Material)
	assert.Equal(t, 3, payload.Old)
	assert.Equal(t, 5, payload.New)
}

func TestMemoryBus_NoSubscribersIsNoop(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), NewStationUnlockedEvent(domain.StationForge))
	assert.NoError(t, err)
}

func TestMemoryBus_HandlersRunInSubscriptionOrder(t *testing.T) {
	bus := NewMemoryBus()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		bus.Subscribe(Type(domain.EventTypeCraftCompleted), func(ctx context.Context, e Event) error {
			order = append(order, i)
			return nil
		})
	}

	job := domain.QueueItem{RecipeID: "iron_sword"}
	err := bus.Publish(context.Background(), NewCraftCompletedEvent(job, nil, 10))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestMemoryBus_HandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()

	bus.Subscribe(Type(domain.EventTypeMasteryLevelUp), func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	called := false
	bus.Subscribe(Type(domain.EventTypeMasteryLevelUp), func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	err := bus.Publish(context.Background(), NewMasteryLevelUpEvent(domain.StationForge, 1, 2, 150))
	assert.Error(t, err)
	assert.True(t, called, "a failing handler must not stop later handlers")
}

func TestNewCraftCancelledEvent_CarriesRefund(t *testing.T) {
	job := domain.QueueItem{RecipeID: "linen_cloth"}
	refund := map[domain.MaterialID]int{"flax": 4}

	e := NewCraftCancelledEvent(job, refund)

	payload, ok := e.Payload.(CraftCancelledPayloadV1)
	require.True(t, ok)
	assert.Equal(t, 4, payload.Refunded["flax"])
	assert.Equal(t, EventSchemaVersion, e.Version)
}
