package mastery

import (
	"context"
	"fmt"
	"sync"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/event"
	"github.com/Yumichan48/foxrunner/internal/logger"
	"github.com/Yumichan48/foxrunner/internal/metrics"
)

// Tracker holds per-station mastery progression. Levels run 1..100 and never
// decrease; experience accumulates without bound. A single grant consumes all
// banked experience: the level-up check loops until no further threshold is
// met, so a large grant can advance several levels at once.
type Tracker struct {
	mu       sync.Mutex
	progress [domain.StationKindCount]domain.MasteryProgress
	// thresholds[n] is the cumulative XP required to hold level n.
	// Stored as float64: the geometric curve overflows int64 near the cap.
	thresholds [domain.MasteryMaxLevel + 1]float64
	bus        event.Bus
}

// New creates a tracker with every station at level 1, XP 0, and the
// requirement table precomputed from the geometric growth rule: the raw
// increment for each level is GrowthFactor times the previous one, seeded
// from BaseIncrement.
func New(bus event.Bus) *Tracker {
	t := &Tracker{bus: bus}

	increment := float64(BaseIncrement)
	for level := 2; level <= domain.MasteryMaxLevel; level++ {
		t.thresholds[level] = t.thresholds[level-1] + increment
		increment *= GrowthFactor
	}

	for kind := 0; kind < domain.StationKindCount; kind++ {
		t.progress[kind] = domain.MasteryProgress{
			Station: domain.StationKind(kind),
			Level:   1,
			XP:      0,
		}
	}
	return t
}

// Level returns the current mastery level at a station.
func (t *Tracker) Level(station domain.StationKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress[station].Level
}

// Progress returns a copy of the progress record for a station.
func (t *Tracker) Progress(station domain.StationKind) domain.MasteryProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress[station]
}

// RequirementFor returns the cumulative XP needed to hold the given level.
func (t *Tracker) RequirementFor(level int) (float64, error) {
	if level < 1 || level > domain.MasteryMaxLevel {
		return 0, fmt.Errorf("level out of range: %d", level)
	}
	return t.thresholds[level], nil
}

// AddExperience grants XP to a station and applies every level-up the new
// total qualifies for. Returns the levels before and after the grant.
func (t *Tracker) AddExperience(ctx context.Context, station domain.StationKind, amount int) (oldLevel, newLevel int, err error) {
	if !station.Valid() {
		return 0, 0, fmt.Errorf("%w: %d", domain.ErrUnknownStationKind, station)
	}
	if amount < 0 {
		return 0, 0, fmt.Errorf("%w: xp grant %d", domain.ErrNegativeAmount, amount)
	}

	t.mu.Lock()
	p := t.progress[station]
	oldLevel = p.Level
	p.XP += int64(amount)

	for p.Level < domain.MasteryMaxLevel && float64(p.XP) >= t.thresholds[p.Level+1] {
		p.Level++
	}
	newLevel = p.Level
	t.progress[station] = p
	t.mu.Unlock()

	if newLevel > oldLevel {
		metrics.MasteryLevelUps.WithLabelValues(station.String()).Add(float64(newLevel - oldLevel))
		logger.FromContext(ctx).Info("Mastery leveled up",
			"station", station.String(), "old_level", oldLevel, "new_level", newLevel, "xp", p.XP)
		if t.bus != nil {
			if err := t.bus.Publish(ctx, event.NewMasteryLevelUpEvent(station, oldLevel, newLevel, p.XP)); err != nil {
				logger.FromContext(ctx).Error("Failed to publish mastery level-up", "error", err)
			}
		}
	}

	return oldLevel, newLevel, nil
}

// Snapshot returns a copy of all progress records.
func (t *Tracker) Snapshot() []domain.MasteryProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.MasteryProgress, domain.StationKindCount)
	copy(out, t.progress[:])
	return out
}

// Restore overwrites progress from persisted state. Levels are clamped into
// [1, max] and never below the level the stored XP already qualifies for.
func (t *Tracker) Restore(ctx context.Context, records []domain.MasteryProgress) {
	log := logger.FromContext(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, rec := range records {
		if !rec.Station.Valid() {
			log.Error("Persisted mastery for unknown station skipped", "station", int(rec.Station))
			continue
		}
		if rec.Level < 1 {
			log.Error("Persisted mastery level out of range, clamping", "station", rec.Station.String(), "level", rec.Level)
			rec.Level = 1
		}
		if rec.Level > domain.MasteryMaxLevel {
			log.Error("Persisted mastery level out of range, clamping", "station", rec.Station.String(), "level", rec.Level)
			rec.Level = domain.MasteryMaxLevel
		}
		if rec.XP < 0 {
			rec.XP = 0
		}
		for rec.Level < domain.MasteryMaxLevel && float64(rec.XP) >= t.thresholds[rec.Level+1] {
			rec.Level++
		}
		t.progress[rec.Station] = rec
	}
}
