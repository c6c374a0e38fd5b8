package catalog

import (
	"fmt"
	"sort"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Yumichan48/foxrunner/internal/domain"
)

// Catalog is the immutable, validated content set: materials, station specs,
// and recipes. It is safe for concurrent readers.
type Catalog struct {
	materials map[domain.MaterialID]domain.Material
	stations  []domain.StationSpec
	recipes   map[string]*domain.Recipe
	order     []string

	// byStation memoizes the per-station recipe lists. The catalog never
	// changes after load, so entries only expire to reclaim memory.
	byStation *expirable.LRU[domain.StationKind, []*domain.Recipe]
}

func newCatalog(materials map[domain.MaterialID]domain.Material, stations []domain.StationSpec, recipes map[string]*domain.Recipe, order []string) *Catalog {
	return &Catalog{
		materials: materials,
		stations:  stations,
		recipes:   recipes,
		order:     order,
		byStation: expirable.NewLRU[domain.StationKind, []*domain.Recipe](stationIndexCacheSize, nil, stationIndexCacheTTL),
	}
}

// Material looks up a material by ID.
func (c *Catalog) Material(id domain.MaterialID) (domain.Material, bool) {
	m, ok := c.materials[id]
	return m, ok
}

// Materials returns every material in the catalog.
func (c *Catalog) Materials() []domain.Material {
	out := make([]domain.Material, 0, len(c.materials))
	for _, id := range c.materialOrder() {
		out = append(out, c.materials[id])
	}
	return out
}

// StationSpecs returns every station spec in catalog order.
func (c *Catalog) StationSpecs() []domain.StationSpec {
	out := make([]domain.StationSpec, len(c.stations))
	copy(out, c.stations)
	return out
}

// Recipe looks up a recipe by ID.
func (c *Catalog) Recipe(id string) (*domain.Recipe, error) {
	recipe, ok := c.recipes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, id)
	}
	return recipe, nil
}

// Recipes returns every recipe in catalog file order.
func (c *Catalog) Recipes() []*domain.Recipe {
	out := make([]*domain.Recipe, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.recipes[id])
	}
	return out
}

// ForStation returns the recipes craftable at a station, in catalog order.
func (c *Catalog) ForStation(kind domain.StationKind) []*domain.Recipe {
	if cached, ok := c.byStation.Get(kind); ok {
		return cached
	}

	var out []*domain.Recipe
	for _, id := range c.order {
		if r := c.recipes[id]; r.Station == kind {
			out = append(out, r)
		}
	}
	c.byStation.Add(kind, out)
	return out
}

// AutoKnown returns the IDs of recipes known without any unlock call.
func (c *Catalog) AutoKnown() []string {
	var out []string
	for _, id := range c.order {
		if c.recipes[id].Gates.Auto() {
			out = append(out, id)
		}
	}
	return out
}

// GateSatisfied checks a recipe's unlock gate against the current mastery
// level at its station, the set of already-known recipes, and externally
// supplied quest completion flags. A nil error means the gate passes.
func (c *Catalog) GateSatisfied(recipe *domain.Recipe, masteryLevel int, known func(string) bool, questFlags map[string]bool) error {
	g := recipe.Gates
	if g.Mastery > 0 && masteryLevel < g.Mastery {
		return fmt.Errorf("%w: recipe '%s' needs mastery %d at %s, have %d",
			domain.ErrGateNotMet, recipe.ID, g.Mastery, recipe.Station, masteryLevel)
	}
	if g.PrereqRecipe != "" && (known == nil || !known(g.PrereqRecipe)) {
		return fmt.Errorf("%w: recipe '%s' needs recipe '%s' known first",
			domain.ErrGateNotMet, recipe.ID, g.PrereqRecipe)
	}
	if g.QuestKey != "" && !questFlags[g.QuestKey] {
		return fmt.Errorf("%w: recipe '%s' needs quest '%s' completed",
			domain.ErrGateNotMet, recipe.ID, g.QuestKey)
	}
	return nil
}

// materialOrder yields material IDs sorted for stable listings.
func (c *Catalog) materialOrder() []domain.MaterialID {
	ids := make([]domain.MaterialID, 0, len(c.materials))
	for id := range c.materials {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
