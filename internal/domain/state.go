package domain

// EngineState is the minimal resumable state of the production engine.
// In-flight queue jobs are not part of it: they are refunded on shutdown and
// the queue restarts empty.
type EngineState struct {
	Stations     []StationState     `json:"stations"`
	Mastery      []MasteryProgress  `json:"mastery"`
	Ledger       map[MaterialID]int `json:"ledger"`
	KnownRecipes []string           `json:"known_recipes"`
	TotalCrafted int64              `json:"total_crafted"`
}
