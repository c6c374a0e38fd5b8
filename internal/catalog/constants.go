package catalog

import "time"

const (
	// Catalog file names resolved inside the config directory
	MaterialsFileName = "materials.json"
	StationsFileName  = "stations.json"
	RecipesFileName   = "recipes.json"

	// Embedded schema names
	MaterialsSchemaName = "materials.schema.json"
	StationsSchemaName  = "stations.schema.json"
	RecipesSchemaName   = "recipes.schema.json"

	// Per-station recipe list cache
	stationIndexCacheSize = 16
	stationIndexCacheTTL  = 5 * time.Minute
)
