package mastery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/event"
)

func TestNew_AllStationsStartAtLevelOne(t *testing.T) {
	tr := New(nil)

	for kind := 0; kind < domain.StationKindCount; kind++ {
		assert.Equal(t, 1, tr.Level(domain.StationKind(kind)))
	}
}

func TestRequirementTable_GeometricGrowth(t *testing.T) {
	tr := New(nil)

	r1, err := tr.RequirementFor(1)
	require.NoError(t, err)
	r2, err := tr.RequirementFor(2)
	require.NoError(t, err)
	r3, err := tr.RequirementFor(3)
	require.NoError(t, err)
	r4, err := tr.RequirementFor(4)
	require.NoError(t, err)

	assert.Zero(t, r1)
	assert.InDelta(t, 100, r2, 1e-9)
	assert.InDelta(t, 250, r3, 1e-9)  // 100 + 150
	assert.InDelta(t, 475, r4, 1e-9)  // 250 + 225

	_, err = tr.RequirementFor(0)
	assert.Error(t, err)
	_, err = tr.RequirementFor(domain.MasteryMaxLevel + 1)
	assert.Error(t, err)
}

func TestAddExperience_SingleLevelUp(t *testing.T) {
	tr := New(nil)

	oldLevel, newLevel, err := tr.AddExperience(context.Background(), domain.StationForge, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, oldLevel)
	assert.Equal(t, 2, newLevel)
}

func TestAddExperience_BankedXPAdvancesMultipleLevels(t *testing.T) {
	tr := New(nil)

	// 475 qualifies for level 4 outright; a single grant must consume it all.
	_, newLevel, err := tr.AddExperience(context.Background(), domain.StationForge, 475)
	require.NoError(t, err)
	assert.Equal(t, 4, newLevel)
}

func TestAddExperience_BelowThresholdKeepsLevel(t *testing.T) {
	tr := New(nil)

	_, newLevel, err := tr.AddExperience(context.Background(), domain.StationLoom, 99)
	require.NoError(t, err)
	assert.Equal(t, 1, newLevel)
	assert.Equal(t, int64(99), tr.Progress(domain.StationLoom).XP)
}

func TestAddExperience_CapsAtMaxLevel(t *testing.T) {
	tr := New(nil)

	// Far beyond any threshold the float64 curve can express.
	_, newLevel, err := tr.AddExperience(context.Background(), domain.StationForge, 1<<62)
	require.NoError(t, err)
	assert.LessOrEqual(t, newLevel, domain.MasteryMaxLevel)
}

func TestAddExperience_MonotonicAcrossOperations(t *testing.T) {
	tr := New(nil)
	ctx := context.Background()

	last := tr.Level(domain.StationKiln)
	grants := []int{0, 50, 50, 1, 1000, 0, 3}
	for _, g := range grants {
		_, newLevel, err := tr.AddExperience(ctx, domain.StationKiln, g)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, newLevel, last)
		last = newLevel
	}
}

func TestAddExperience_NegativeRejected(t *testing.T) {
	tr := New(nil)

	_, _, err := tr.AddExperience(context.Background(), domain.StationForge, -5)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestAddExperience_PublishesLevelUpEvent(t *testing.T) {
	bus := event.NewMemoryBus()
	var got []event.MasteryLevelUpPayloadV1
	bus.Subscribe(event.Type(domain.EventTypeMasteryLevelUp), func(ctx context.Context, e event.Event) error {
		got = append(got, e.Payload.(event.MasteryLevelUpPayloadV1))
		return nil
	})

	tr := New(bus)
	_, _, err := tr.AddExperience(context.Background(), domain.StationForge, 250)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].OldLevel)
	assert.Equal(t, 3, got[0].NewLevel)
}

func TestRestore_ClampsBadRecords(t *testing.T) {
	tr := New(nil)
	ctx := context.Background()

	tr.Restore(ctx, []domain.MasteryProgress{
		{Station: domain.StationForge, Level: 0, XP: -10},
		{Station: domain.StationLoom, Level: 150, XP: 1 << 40},
		{Station: domain.StationKind(99), Level: 5, XP: 0},
	})

	assert.Equal(t, 1, tr.Level(domain.StationForge))
	assert.Equal(t, domain.MasteryMaxLevel, tr.Level(domain.StationLoom))
}

func TestRestore_LevelNeverBelowWhatXPQualifiesFor(t *testing.T) {
	tr := New(nil)
	ctx := context.Background()

	// 250 XP is exactly the cumulative requirement for level 3
	// (100 to reach 2, plus 150 to reach 3).
	tr.Restore(ctx, []domain.MasteryProgress{
		{Station: domain.StationForge, Level: 1, XP: 250},
		{Station: domain.StationLoom, Level: 2, XP: 249},
	})

	assert.Equal(t, 3, tr.Level(domain.StationForge))
	assert.Equal(t, 2, tr.Level(domain.StationLoom))
	assert.Equal(t, int64(250), tr.Progress(domain.StationForge).XP)
}

func TestSnapshot_RoundTripsThroughRestore(t *testing.T) {
	tr := New(nil)
	ctx := context.Background()
	_, _, err := tr.AddExperience(ctx, domain.StationForge, 600)
	require.NoError(t, err)

	snap := tr.Snapshot()

	fresh := New(nil)
	fresh.Restore(ctx, snap)
	assert.Equal(t, tr.Level(domain.StationForge), fresh.Level(domain.StationForge))
	assert.Equal(t, tr.Progress(domain.StationForge).XP, fresh.Progress(domain.StationForge).XP)
}
