package domain

import (
	"time"

	"github.com/google/uuid"
)

// QueueItem is a scheduled crafting job with a deterministic completion time.
// Completion is derived from absolute timestamps, never from tick counts.
type QueueItem struct {
	ID           uuid.UUID   `json:"id"`
	RecipeID     string      `json:"recipe_id"`
	Station      StationKind `json:"station"`
	Quantity     int         `json:"quantity"`
	StartedAt    time.Time   `json:"started_at"`
	CompletesAt  time.Time   `json:"completes_at"`
	Completed    bool        `json:"completed"`
}

// Progress returns the completion fraction at the given instant, in [0,1].
func (q QueueItem) Progress(now time.Time) float64 {
	total := q.CompletesAt.Sub(q.StartedAt)
	if total <= 0 {
		return 1.0
	}
	elapsed := now.Sub(q.StartedAt)
	if elapsed <= 0 {
		return 0.0
	}
	frac := float64(elapsed) / float64(total)
	if frac > 1.0 {
		return 1.0
	}
	return frac
}

// QueueSnapshotEntry is one job in an ordered queue snapshot handed to callers.
type QueueSnapshotEntry struct {
	ID          uuid.UUID   `json:"id"`
	RecipeID    string      `json:"recipe_id"`
	Station     StationKind `json:"station"`
	Quantity    int         `json:"quantity"`
	StartedAt   time.Time   `json:"started_at"`
	CompletesAt time.Time   `json:"completes_at"`
	Progress    float64     `json:"progress"`
}

// ProducedUnit is a single resolved output unit of a completed job.
type ProducedUnit struct {
	Kind     ResultKind  `json:"kind"`
	TargetID string      `json:"target_id"`
	Amount   int         `json:"amount"`
	Quality  QualityTier `json:"quality"`
}
