package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yumichan48/foxrunner/internal/domain"
)

func TestForStation_FiltersAndCaches(t *testing.T) {
	cat := loadValidCatalog(t)

	forge := cat.ForStation(domain.StationForge)
	require.Len(t, forge, 1)
	assert.Equal(t, "iron_sword", forge[0].ID)

	// Second call serves the memoized list.
	again := cat.ForStation(domain.StationForge)
	assert.Equal(t, forge, again)

	assert.Empty(t, cat.ForStation(domain.StationKiln))
}

func TestRecipes_PreservesFileOrder(t *testing.T) {
	cat := loadValidCatalog(t)

	ids := make([]string, 0)
	for _, r := range cat.Recipes() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"plank_shield", "iron_sword", "silk_bolt"}, ids)
}

func TestAutoKnown_OnlyUngatedRecipes(t *testing.T) {
	cat := loadValidCatalog(t)
	assert.Equal(t, []string{"plank_shield"}, cat.AutoKnown())
}

func TestGateSatisfied_MasteryGate(t *testing.T) {
	cat := loadValidCatalog(t)
	recipe, err := cat.Recipe("iron_sword")
	require.NoError(t, err)

	err = cat.GateSatisfied(recipe, 3, nil, nil)
	assert.ErrorIs(t, err, domain.ErrGateNotMet)

	assert.NoError(t, cat.GateSatisfied(recipe, 5, nil, nil))
}

func TestGateSatisfied_PrereqRecipeGate(t *testing.T) {
	cat := loadValidCatalog(t)
	recipe, err := cat.Recipe("silk_bolt")
	require.NoError(t, err)

	err = cat.GateSatisfied(recipe, 50, func(string) bool { return false }, nil)
	assert.ErrorIs(t, err, domain.ErrGateNotMet)

	known := func(id string) bool { return id == "plank_shield" }
	assert.NoError(t, cat.GateSatisfied(recipe, 0, known, nil))
}

func TestGateSatisfied_QuestGate(t *testing.T) {
	cat := loadValidCatalog(t)
	recipe := &domain.Recipe{
		ID:      "quest_locked",
		Station: domain.StationWorkbench,
		Gates:   domain.RecipeGates{QuestKey: "chapter_two"},
	}

	err := cat.GateSatisfied(recipe, 0, nil, nil)
	assert.ErrorIs(t, err, domain.ErrGateNotMet)

	assert.NoError(t, cat.GateSatisfied(recipe, 0, nil, map[string]bool{"chapter_two": true}))
}
