package domain

// MasteryMaxLevel is the ceiling of per-station mastery progression.
const MasteryMaxLevel = 100

// MasteryProgress tracks a player's skill at one station kind.
// Level is monotonically non-decreasing; XP accumulates without bound.
type MasteryProgress struct {
	Station StationKind `json:"station"`
	Level   int         `json:"level"`
	XP      int64       `json:"xp"`
}
