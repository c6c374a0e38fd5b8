package domain

// EventType identifies engine events carried on the event bus.
type EventType string

const (
	EventTypeLedgerChanged   EventType = "ledger.changed"
	EventTypeStationUnlocked EventType = "station.unlocked"
	EventTypeStationLeveled  EventType = "station.leveled"
	EventTypeMasteryLevelUp  EventType = "mastery.levelup"
	EventTypeCraftStarted    EventType = "craft.started"
	EventTypeCraftCompleted  EventType = "craft.completed"
	EventTypeCraftCancelled  EventType = "craft.cancelled"
	EventTypeOutputProduced  EventType = "output.produced"
	EventTypeRecipeUnlocked  EventType = "recipe.unlocked"
)

// Event metadata keys shared by publishers and observers
const (
	MetadataKeyStation  = "station"
	MetadataKeyRecipe   = "recipe"
	MetadataKeyMaterial = "material"
	MetadataKeyQuantity = "quantity"
	MetadataKeySource   = "source"
)
