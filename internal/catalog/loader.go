package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/validation"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Sentinel errors for catalog loading
var (
	ErrDuplicateKey     = errors.New("duplicate catalog key")
	ErrUnknownReference = errors.New("unknown catalog reference")
	ErrInvalidConfig    = errors.New("invalid catalog configuration")
)

// MaterialsFile is the JSON layout of the material catalog.
type MaterialsFile struct {
	Version     string        `json:"version"`
	Description string        `json:"description,omitempty"`
	Materials   []MaterialDef `json:"materials"`
}

// MaterialDef is a single material entry in the JSON.
type MaterialDef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Rarity      string `json:"rarity"`
	MaxStack    int    `json:"max_stack"`
	Tradeable   bool   `json:"tradeable"`
}

// StationsFile is the JSON layout of the station catalog.
type StationsFile struct {
	Version     string       `json:"version"`
	Description string       `json:"description,omitempty"`
	Stations    []StationDef `json:"stations"`
}

// StationDef is a single station entry in the JSON.
type StationDef struct {
	Kind            string           `json:"kind"`
	DisplayName     string           `json:"display_name"`
	MaxLevel        int              `json:"max_level"`
	BaseSpeed       float64          `json:"base_speed"`
	StartsUnlocked  bool             `json:"starts_unlocked"`
	PrereqMastery   int              `json:"prereq_mastery"`
	UpgradeCosts    []UpgradeCostDef `json:"upgrade_costs"`
	Specializations []string         `json:"specializations"`
}

// UpgradeCostDef is the price of one station level step.
type UpgradeCostDef struct {
	Currency  int            `json:"currency"`
	Materials map[string]int `json:"materials"`
}

// RecipesFile is the JSON layout of the recipe catalog.
type RecipesFile struct {
	Version     string      `json:"version"`
	Description string      `json:"description,omitempty"`
	Recipes     []RecipeDef `json:"recipes"`
}

// RecipeDef is a single recipe entry in the JSON.
type RecipeDef struct {
	ID               string          `json:"recipe_id"`
	DisplayName      string          `json:"display_name"`
	Station          string          `json:"station"`
	Specialization   string          `json:"specialization"`
	MinMastery       int             `json:"min_mastery"`
	CraftTimeSeconds float64         `json:"craft_time_seconds"`
	XPReward         int             `json:"xp_reward"`
	AllowsBatch      bool            `json:"allows_batch"`
	Ingredients      []IngredientDef `json:"ingredients"`
	Results          []ResultDef     `json:"results"`
	Gates            *GateDef        `json:"gates"`
}

// IngredientDef is one material requirement line. Consumed defaults to true;
// set it to false for tools that must be present but are not debited.
type IngredientDef struct {
	Material   string `json:"material"`
	Amount     int    `json:"amount"`
	Consumed   *bool  `json:"consumed"`
	MinQuality string `json:"min_quality"`
}

// ResultDef is one probabilistic output line. Chance defaults to 1.0.
type ResultDef struct {
	Kind        string   `json:"kind"`
	Target      string   `json:"target"`
	Amount      int      `json:"amount"`
	BaseQuality string   `json:"base_quality"`
	Chance      *float64 `json:"chance"`
}

// GateDef is the unlock condition block of a recipe.
type GateDef struct {
	Mastery      int    `json:"mastery"`
	PrereqRecipe string `json:"prereq_recipe"`
	QuestKey     string `json:"quest_key"`
}

// Loader reads, schema-validates, and cross-validates the three catalog files.
type Loader interface {
	Load(configDir string) (*Catalog, error)
}

type loader struct {
	validator validation.SchemaValidator
}

// NewLoader creates a Loader with the embedded schemas compiled.
func NewLoader() (Loader, error) {
	docs := make(map[string][]byte, 3)
	for _, name := range []string{MaterialsSchemaName, StationsSchemaName, RecipesSchemaName} {
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded schema %s: %w", name, err)
		}
		docs[name] = data
	}

	v, err := validation.NewSchemaValidator(docs)
	if err != nil {
		return nil, err
	}
	return &loader{validator: v}, nil
}

// Load reads the catalog files from configDir and builds an immutable Catalog.
// Any schema violation, duplicate key, or dangling cross-reference fails the
// whole load; a catalog is never partially constructed.
func (l *loader) Load(configDir string) (*Catalog, error) {
	var materialsFile MaterialsFile
	if err := l.loadFile(filepath.Join(configDir, MaterialsFileName), MaterialsSchemaName, &materialsFile); err != nil {
		return nil, err
	}

	var stationsFile StationsFile
	if err := l.loadFile(filepath.Join(configDir, StationsFileName), StationsSchemaName, &stationsFile); err != nil {
		return nil, err
	}

	var recipesFile RecipesFile
	if err := l.loadFile(filepath.Join(configDir, RecipesFileName), RecipesSchemaName, &recipesFile); err != nil {
		return nil, err
	}

	materials, err := buildMaterials(materialsFile.Materials)
	if err != nil {
		return nil, err
	}

	stations, err := buildStations(stationsFile.Stations, materials)
	if err != nil {
		return nil, err
	}

	recipes, order, err := buildRecipes(recipesFile.Recipes, materials, stations)
	if err != nil {
		return nil, err
	}

	return newCatalog(materials, stations, recipes, order), nil
}

func (l *loader) loadFile(path, schemaName string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	if err := l.validator.ValidateBytes(data, schemaName); err != nil {
		return fmt.Errorf("catalog file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return nil
}

func buildMaterials(defs []MaterialDef) (map[domain.MaterialID]domain.Material, error) {
	materials := make(map[domain.MaterialID]domain.Material, len(defs))
	for _, def := range defs {
		id := domain.MaterialID(def.ID)
		if _, ok := materials[id]; ok {
			return nil, fmt.Errorf("%w: material '%s'", ErrDuplicateKey, def.ID)
		}
		materials[id] = domain.Material{
			ID:          id,
			DisplayName: def.DisplayName,
			Rarity:      domain.Rarity(def.Rarity),
			MaxStack:    def.MaxStack,
			Tradeable:   def.Tradeable,
		}
	}
	return materials, nil
}

func buildStations(defs []StationDef, materials map[domain.MaterialID]domain.Material) ([]domain.StationSpec, error) {
	specs := make([]domain.StationSpec, 0, len(defs))
	seen := make(map[domain.StationKind]bool, len(defs))

	for _, def := range defs {
		kind, ok := domain.StationKindFromName(def.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: station kind '%s'", ErrUnknownReference, def.Kind)
		}
		if seen[kind] {
			return nil, fmt.Errorf("%w: station '%s'", ErrDuplicateKey, def.Kind)
		}
		seen[kind] = true

		costs := make([]domain.StationUpgradeCost, len(def.UpgradeCosts))
		for i, costDef := range def.UpgradeCosts {
			cost := domain.StationUpgradeCost{Currency: costDef.Currency}
			if len(costDef.Materials) > 0 {
				cost.Materials = make(map[domain.MaterialID]int, len(costDef.Materials))
				for mat, amount := range costDef.Materials {
					id := domain.MaterialID(mat)
					if _, ok := materials[id]; !ok {
						return nil, fmt.Errorf("%w: station '%s' upgrade cost references material '%s'", ErrUnknownReference, def.Kind, mat)
					}
					cost.Materials[id] = amount
				}
			}
			costs[i] = cost
		}

		specs = append(specs, domain.StationSpec{
			Kind:            kind,
			DisplayName:     def.DisplayName,
			MaxLevel:        def.MaxLevel,
			BaseSpeed:       def.BaseSpeed,
			StartsUnlocked:  def.StartsUnlocked,
			PrereqMastery:   def.PrereqMastery,
			UpgradeCosts:    costs,
			Specializations: def.Specializations,
		})
	}

	for kind := domain.StationWorkbench; kind.Valid(); kind++ {
		if !seen[kind] {
			return nil, fmt.Errorf("%w: no station entry for '%s'", domain.ErrMissingCatalogEntry, kind)
		}
	}
	return specs, nil
}

func buildRecipes(defs []RecipeDef, materials map[domain.MaterialID]domain.Material, stations []domain.StationSpec) (map[string]*domain.Recipe, []string, error) {
	specByKind := make(map[domain.StationKind]domain.StationSpec, len(stations))
	for _, s := range stations {
		specByKind[s.Kind] = s
	}

	ids := make(map[string]bool, len(defs))
	for _, def := range defs {
		if ids[def.ID] {
			return nil, nil, fmt.Errorf("%w: recipe '%s'", ErrDuplicateKey, def.ID)
		}
		ids[def.ID] = true
	}

	recipes := make(map[string]*domain.Recipe, len(defs))
	order := make([]string, 0, len(defs))

	for _, def := range defs {
		recipe, err := buildRecipe(def, materials, specByKind, ids)
		if err != nil {
			return nil, nil, err
		}
		recipes[recipe.ID] = recipe
		order = append(order, recipe.ID)
	}
	return recipes, order, nil
}

func buildRecipe(def RecipeDef, materials map[domain.MaterialID]domain.Material, stations map[domain.StationKind]domain.StationSpec, recipeIDs map[string]bool) (*domain.Recipe, error) {
	kind, ok := domain.StationKindFromName(def.Station)
	if !ok {
		return nil, fmt.Errorf("%w: recipe '%s' station '%s'", ErrUnknownReference, def.ID, def.Station)
	}

	if def.Specialization != "" {
		found := false
		for _, s := range stations[kind].Specializations {
			if s == def.Specialization {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: recipe '%s' specialization '%s' not offered by %s", ErrUnknownReference, def.ID, def.Specialization, kind)
		}
	}

	ingredients := make([]domain.Ingredient, len(def.Ingredients))
	for i, ingDef := range def.Ingredients {
		id := domain.MaterialID(ingDef.Material)
		if _, ok := materials[id]; !ok {
			return nil, fmt.Errorf("%w: recipe '%s' ingredient '%s'", ErrUnknownReference, def.ID, ingDef.Material)
		}

		minQuality := domain.QualityCrude
		if ingDef.MinQuality != "" {
			tier, ok := domain.QualityTierFromName(ingDef.MinQuality)
			if !ok {
				return nil, fmt.Errorf("%w: recipe '%s' ingredient '%s' min_quality '%s'", ErrInvalidConfig, def.ID, ingDef.Material, ingDef.MinQuality)
			}
			minQuality = tier
		}

		consumed := true
		if ingDef.Consumed != nil {
			consumed = *ingDef.Consumed
		}

		ingredients[i] = domain.Ingredient{
			MaterialID: id,
			Amount:     ingDef.Amount,
			Consumed:   consumed,
			MinQuality: minQuality,
		}
	}

	results := make([]domain.RecipeResult, len(def.Results))
	for i, resDef := range def.Results {
		resultKind := domain.ResultKind(resDef.Kind)
		if !resultKind.Valid() {
			return nil, fmt.Errorf("%w: recipe '%s' result kind '%s'", ErrInvalidConfig, def.ID, resDef.Kind)
		}
		if resultKind == domain.ResultMaterial {
			if _, ok := materials[domain.MaterialID(resDef.Target)]; !ok {
				return nil, fmt.Errorf("%w: recipe '%s' result material '%s'", ErrUnknownReference, def.ID, resDef.Target)
			}
		}

		baseQuality := domain.QualityCommon
		if resDef.BaseQuality != "" {
			tier, ok := domain.QualityTierFromName(resDef.BaseQuality)
			if !ok {
				return nil, fmt.Errorf("%w: recipe '%s' result base_quality '%s'", ErrInvalidConfig, def.ID, resDef.BaseQuality)
			}
			baseQuality = tier
		}

		chance := 1.0
		if resDef.Chance != nil {
			chance = *resDef.Chance
		}

		results[i] = domain.RecipeResult{
			Kind:        resultKind,
			TargetID:    resDef.Target,
			Amount:      resDef.Amount,
			BaseQuality: baseQuality,
			Chance:      chance,
		}
	}

	gates := domain.RecipeGates{}
	if def.Gates != nil {
		if def.Gates.PrereqRecipe != "" && !recipeIDs[def.Gates.PrereqRecipe] {
			return nil, fmt.Errorf("%w: recipe '%s' prereq_recipe '%s'", ErrUnknownReference, def.ID, def.Gates.PrereqRecipe)
		}
		if def.Gates.PrereqRecipe == def.ID {
			return nil, fmt.Errorf("%w: recipe '%s' is its own prerequisite", ErrInvalidConfig, def.ID)
		}
		gates = domain.RecipeGates{
			Mastery:      def.Gates.Mastery,
			PrereqRecipe: def.Gates.PrereqRecipe,
			QuestKey:     def.Gates.QuestKey,
		}
	}

	return &domain.Recipe{
		ID:             def.ID,
		DisplayName:    def.DisplayName,
		Station:        kind,
		Specialization: def.Specialization,
		MinMastery:     def.MinMastery,
		BaseCraftTime:  time.Duration(def.CraftTimeSeconds * float64(time.Second)),
		XPReward:       def.XPReward,
		AllowsBatch:    def.AllowsBatch,
		Ingredients:    ingredients,
		Results:        results,
		Gates:          gates,
	}, nil
}
