package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/event"
)

func testMaterials() []domain.Material {
	return []domain.Material{
		{ID: "iron_ore", DisplayName: "Iron Ore", Rarity: domain.RarityCommon, MaxStack: 99},
		{ID: "oak_plank", DisplayName: "Oak Plank", Rarity: domain.RarityCommon, MaxStack: 50},
		{ID: "dragon_scale", DisplayName: "Dragon Scale", Rarity: domain.RarityLegendary, MaxStack: 5},
	}
}

func TestNew_AllMaterialsStartAtZero(t *testing.T) {
	l := New(testMaterials(), nil)

	assert.Equal(t, 0, l.Quantity("iron_ore"))
	assert.Equal(t, 0, l.Quantity("oak_plank"))
	assert.Equal(t, 0, l.Quantity("dragon_scale"))
}

func TestAdd_ReportsOldAndNew(t *testing.T) {
	l := New(testMaterials(), nil)

	change, err := l.Add(context.Background(), "iron_ore", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, change.Old)
	assert.Equal(t, 10, change.New)
}

func TestAdd_ClampsAtStackCap(t *testing.T) {
	l := New(testMaterials(), nil)

	_, err := l.Add(context.Background(), "dragon_scale", 3)
	require.NoError(t, err)

	change, err := l.Add(context.Background(), "dragon_scale", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, change.Old)
	assert.Equal(t, 5, change.New, "quantity must clamp at the material cap")
}

func TestAdd_UnknownMaterial(t *testing.T) {
	l := New(testMaterials(), nil)

	_, err := l.Add(context.Background(), "unobtanium", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownMaterial)
}

func TestAdd_NegativeAmount(t *testing.T) {
	l := New(testMaterials(), nil)

	_, err := l.Add(context.Background(), "iron_ore", -1)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestRemove_InsufficientLeavesLedgerUnchanged(t *testing.T) {
	l := New(testMaterials(), nil)
	_, err := l.Add(context.Background(), "iron_ore", 5)
	require.NoError(t, err)

	_, err = l.Remove(context.Background(), "iron_ore", 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientMaterial)
	assert.Equal(t, 5, l.Quantity("iron_ore"), "failed remove must not mutate")
}

func TestRemove_Debits(t *testing.T) {
	l := New(testMaterials(), nil)
	_, err := l.Add(context.Background(), "iron_ore", 5)
	require.NoError(t, err)

	change, err := l.Remove(context.Background(), "iron_ore", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, change.Old)
	assert.Equal(t, 2, change.New)
}

func TestDebitAll_AllOrNothing(t *testing.T) {
	l := New(testMaterials(), nil)
	ctx := context.Background()
	_, _ = l.Add(ctx, "iron_ore", 10)
	_, _ = l.Add(ctx, "oak_plank", 2)

	err := l.DebitAll(ctx, map[domain.MaterialID]int{
		"iron_ore":  4,
		"oak_plank": 3, // only 2 held
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientMaterial)
	assert.Equal(t, 10, l.Quantity("iron_ore"), "partial debit must not happen")
	assert.Equal(t, 2, l.Quantity("oak_plank"))
}

func TestDebitAll_Succeeds(t *testing.T) {
	l := New(testMaterials(), nil)
	ctx := context.Background()
	_, _ = l.Add(ctx, "iron_ore", 10)
	_, _ = l.Add(ctx, "oak_plank", 5)

	err := l.DebitAll(ctx, map[domain.MaterialID]int{
		"iron_ore":  4,
		"oak_plank": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, l.Quantity("iron_ore"))
	assert.Equal(t, 2, l.Quantity("oak_plank"))
}

func TestCreditAll_ClampsAndSkipsUnknown(t *testing.T) {
	l := New(testMaterials(), nil)
	ctx := context.Background()

	l.CreditAll(ctx, map[domain.MaterialID]int{
		"dragon_scale": 10, // cap 5
		"unobtanium":   3,  // unknown, skipped
	})

	assert.Equal(t, 5, l.Quantity("dragon_scale"))
	assert.Equal(t, 0, l.Quantity("unobtanium"))
}

func TestLedger_EmitsChangeEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	var mu sync.Mutex
	var changes []event.LedgerChangedPayloadV1
	bus.Subscribe(event.Type(domain.EventTypeLedgerChanged), func(ctx context.Context, e event.Event) error {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, e.Payload.(event.LedgerChangedPayloadV1))
		return nil
	})

	l := New(testMaterials(), bus)
	ctx := context.Background()
	_, err := l.Add(ctx, "iron_ore", 7)
	require.NoError(t, err)
	_, err = l.Remove(ctx, "iron_ore", 2)
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.Equal(t, 0, changes[0].Old)
	assert.Equal(t, 7, changes[0].New)
	assert.Equal(t, 7, changes[1].Old)
	assert.Equal(t, 5, changes[1].New)
}

func TestRestore_ClampsOutOfRangeState(t *testing.T) {
	l := New(testMaterials(), nil)
	ctx := context.Background()

	l.Restore(ctx, map[domain.MaterialID]int{
		"iron_ore":     -4,
		"dragon_scale": 9,
		"oak_plank":    12,
	})

	assert.Equal(t, 0, l.Quantity("iron_ore"))
	assert.Equal(t, 5, l.Quantity("dragon_scale"))
	assert.Equal(t, 12, l.Quantity("oak_plank"))
}

func TestReset_ZeroesEverything(t *testing.T) {
	l := New(testMaterials(), nil)
	ctx := context.Background()
	_, _ = l.Add(ctx, "iron_ore", 7)

	l.Reset()

	assert.Equal(t, 0, l.Quantity("iron_ore"))
	snapshot := l.Snapshot()
	for id, qty := range snapshot {
		assert.Zero(t, qty, "material %s", id)
	}
}

func TestLedger_ConcurrentMutationsStayConsistent(t *testing.T) {
	l := New(testMaterials(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Add(ctx, "iron_ore", 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, l.Quantity("iron_ore"))
}
