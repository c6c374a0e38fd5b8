package domain

import "time"

// ResultKind routes a produced unit to its destination system.
type ResultKind string

const (
	ResultMaterial  ResultKind = "material"
	ResultEquipment ResultKind = "equipment"
	ResultCurrency  ResultKind = "currency"
)

// Valid reports whether k is a routable result kind.
func (k ResultKind) Valid() bool {
	switch k {
	case ResultMaterial, ResultEquipment, ResultCurrency:
		return true
	}
	return false
}

// Ingredient is a single material requirement of a recipe.
// Non-consumed ingredients (tools) must be present but are not debited.
type Ingredient struct {
	MaterialID MaterialID  `json:"material_id"`
	Amount     int         `json:"amount"`
	Consumed   bool        `json:"consumed"`
	MinQuality QualityTier `json:"min_quality"`
}

// RecipeResult is one probabilistic output line of a recipe.
type RecipeResult struct {
	Kind        ResultKind  `json:"kind"`
	TargetID    string      `json:"target_id"` // MaterialID, equipment type, or currency code
	Amount      int         `json:"amount"`
	BaseQuality QualityTier `json:"base_quality"`
	Chance      float64     `json:"chance"` // per-unit production probability in [0,1]
}

// RecipeGates are the conditions under which a recipe becomes known.
// A recipe with no gates is known from the start.
type RecipeGates struct {
	Mastery      int    `json:"mastery,omitempty"`       // minimum mastery at the recipe's station
	PrereqRecipe string `json:"prereq_recipe,omitempty"` // recipe that must already be known
	QuestKey     string `json:"quest_key,omitempty"`     // satisfied externally by the quest system
}

// Auto reports whether the recipe is known without any unlock call.
func (g RecipeGates) Auto() bool {
	return g.Mastery == 0 && g.PrereqRecipe == "" && g.QuestKey == ""
}

// Recipe is an immutable catalog entry mapping ingredients to probabilistic
// results. The per-player "known" flag lives outside the recipe, in engine state.
type Recipe struct {
	ID             string         `json:"recipe_id"`
	DisplayName    string         `json:"display_name"`
	Station        StationKind    `json:"station"`
	Specialization string         `json:"specialization,omitempty"`
	MinMastery     int            `json:"min_mastery"`
	BaseCraftTime  time.Duration  `json:"base_craft_time"`
	XPReward       int            `json:"xp_reward"`
	AllowsBatch    bool           `json:"allows_batch"`
	Ingredients    []Ingredient   `json:"ingredients"`
	Results        []RecipeResult `json:"results"`
	Gates          RecipeGates    `json:"gates"`
}
