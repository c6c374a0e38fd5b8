package domain

// MaterialID is the stable catalog identifier of a material (e.g. "iron_ingot").
type MaterialID string

// Rarity buckets materials for drop tables and display.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// Material is an immutable catalog entry for a consumable crafting material.
type Material struct {
	ID          MaterialID `json:"material_id"`
	DisplayName string     `json:"display_name"`
	Rarity      Rarity     `json:"rarity"`
	MaxStack    int        `json:"max_stack"`
	Tradeable   bool       `json:"tradeable"`
}
