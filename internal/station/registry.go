package station

import (
	"context"
	"fmt"
	"sync"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/event"
	"github.com/Yumichan48/foxrunner/internal/ledger"
	"github.com/Yumichan48/foxrunner/internal/logger"
	"github.com/Yumichan48/foxrunner/internal/metrics"
)

// Wallet is the opaque currency collaborator consulted for upgrade costs.
type Wallet interface {
	Affordable(currency string, amount int) bool
	Debit(ctx context.Context, currency string, amount int) error
	Credit(ctx context.Context, currency string, amount int) error
}

// MasterySource reports the current mastery level at a station. The registry
// consults it for prerequisite unlock gates.
type MasterySource interface {
	Level(station domain.StationKind) int
}

// Registry holds one instance per station kind. Levels start at 1 and only
// increase; the unlocked flag only transitions false to true.
type Registry struct {
	mu      sync.Mutex
	specs   [domain.StationKindCount]domain.StationSpec
	states  [domain.StationKindCount]domain.StationState
	ledger  *ledger.Ledger
	wallet  Wallet
	mastery MasterySource
	bus     event.Bus
}

// New creates a registry from catalog specs. Kinds marked StartsUnlocked
// begin unlocked at level 1; everything else starts locked.
func New(specs []domain.StationSpec, led *ledger.Ledger, wallet Wallet, mastery MasterySource, bus event.Bus) (*Registry, error) {
	r := &Registry{ledger: led, wallet: wallet, mastery: mastery, bus: bus}

	seen := [domain.StationKindCount]bool{}
	for _, spec := range specs {
		if !spec.Kind.Valid() {
			return nil, fmt.Errorf("%w: %d", domain.ErrUnknownStationKind, spec.Kind)
		}
		r.specs[spec.Kind] = spec
		r.states[spec.Kind] = domain.StationState{
			Kind:     spec.Kind,
			Level:    1,
			Unlocked: spec.StartsUnlocked,
		}
		seen[spec.Kind] = true
	}
	for kind, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: no spec for station %s", domain.ErrMissingCatalogEntry, domain.StationKind(kind))
		}
	}
	return r, nil
}

// Spec returns the immutable catalog spec of a kind.
func (r *Registry) Spec(kind domain.StationKind) domain.StationSpec {
	return r.specs[kind]
}

// Level returns the current level of a station.
func (r *Registry) Level(kind domain.StationKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[kind].Level
}

// Unlocked reports whether a station is unlocked.
func (r *Registry) Unlocked(kind domain.StationKind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[kind].Unlocked
}

// SpeedMultiplier is the station's time factor: base speed of the kind times
// a linear 10%-per-level term, zero bonus at level 1.
func (r *Registry) SpeedMultiplier(kind domain.StationKind) float64 {
	r.mu.Lock()
	level := r.states[kind].Level
	r.mu.Unlock()
	return r.specs[kind].BaseSpeed * (1.0 + SpeedBonusPerLevel*float64(level-1))
}

// QualityBonus is the station's advisory quality term, zero at level 1.
// It is exposed for future quality-roll integration; the production roll
// currently uses the mastery terms only.
func (r *Registry) QualityBonus(kind domain.StationKind) float64 {
	r.mu.Lock()
	level := r.states[kind].Level
	r.mu.Unlock()
	return QualityBonusPerLevel * float64(level-1)
}

// Unlock transitions a station to unlocked. It is idempotent: unlocking an
// already-unlocked station is a no-op and fires no event. The prerequisite
// chain must be satisfied: every kind past the basic ones requires the
// configured mastery level at the kind directly before it in the fixed order.
func (r *Registry) Unlock(ctx context.Context, kind domain.StationKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrUnknownStationKind, kind)
	}

	r.mu.Lock()
	if r.states[kind].Unlocked {
		r.mu.Unlock()
		return nil
	}

	spec := r.specs[kind]
	if !spec.StartsUnlocked && kind > domain.StationWorkbench {
		prereq := kind - 1
		if got := r.mastery.Level(prereq); got < spec.PrereqMastery {
			r.mu.Unlock()
			return fmt.Errorf("%w: %s needs mastery %d at %s, have %d",
				domain.ErrPrereqNotMet, kind, spec.PrereqMastery, prereq, got)
		}
	}

	r.states[kind].Unlocked = true
	r.mu.Unlock()

	logger.FromContext(ctx).Info("Station unlocked", "station", kind.String())
	if r.bus != nil {
		if err := r.bus.Publish(ctx, event.NewStationUnlockedEvent(kind)); err != nil {
			logger.FromContext(ctx).Error("Failed to publish station unlock", "error", err)
		}
	}
	return nil
}

// Upgrade raises a station one level. It succeeds only if the station is
// unlocked, below its max level, and the level's upgrade cost (currency plus
// materials) is affordable; on success the cost is debited and a level-change
// event fires. The mutex is held from the max-level check through the level
// increment so concurrent upgrades serialize: neither the ledger nor the
// wallet calls back into the registry.
func (r *Registry) Upgrade(ctx context.Context, kind domain.StationKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrUnknownStationKind, kind)
	}

	r.mu.Lock()
	state := r.states[kind]
	spec := r.specs[kind]

	if !state.Unlocked {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrStationLocked, kind)
	}
	if state.Level >= spec.MaxLevel {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s at level %d", domain.ErrStationMaxLevel, kind, state.Level)
	}

	cost := domain.StationUpgradeCost{}
	if idx := state.Level - 1; idx < len(spec.UpgradeCosts) {
		cost = spec.UpgradeCosts[idx]
	}

	if cost.Currency > 0 && !r.wallet.Affordable(UpgradeCurrency, cost.Currency) {
		r.mu.Unlock()
		return fmt.Errorf("%w: %d %s for %s upgrade", domain.ErrInsufficientMaterial, cost.Currency, UpgradeCurrency, kind)
	}
	if len(cost.Materials) > 0 {
		if err := r.ledger.DebitAll(ctx, cost.Materials); err != nil {
			r.mu.Unlock()
			return fmt.Errorf("upgrade cost debit failed: %w", err)
		}
	}
	if cost.Currency > 0 {
		if err := r.wallet.Debit(ctx, UpgradeCurrency, cost.Currency); err != nil {
			// Affordability was checked above, so this is an invariant break.
			// Put the materials back and surface the failure.
			r.ledger.CreditAll(ctx, cost.Materials)
			r.mu.Unlock()
			logger.FromContext(ctx).Error("Wallet debit failed after affordability check", "error", err, "station", kind.String())
			return fmt.Errorf("upgrade currency debit failed: %w", err)
		}
	}

	oldLevel := r.states[kind].Level
	r.states[kind].Level = oldLevel + 1
	newLevel := r.states[kind].Level
	r.mu.Unlock()

	metrics.StationUpgrades.WithLabelValues(kind.String()).Inc()
	logger.FromContext(ctx).Info("Station upgraded", "station", kind.String(), "old_level", oldLevel, "new_level", newLevel)
	if r.bus != nil {
		if err := r.bus.Publish(ctx, event.NewStationLeveledEvent(kind, oldLevel, newLevel)); err != nil {
			logger.FromContext(ctx).Error("Failed to publish station level change", "error", err)
		}
	}
	return nil
}

// Snapshot returns a copy of all station states in kind order.
func (r *Registry) Snapshot() []domain.StationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.StationState, domain.StationKindCount)
	copy(out, r.states[:])
	return out
}

// Restore overwrites states from persisted records. Levels are clamped into
// [1, max]; the unlocked flag is taken verbatim (it was validated on the way
// in and unlock gates do not re-apply retroactively).
func (r *Registry) Restore(ctx context.Context, records []domain.StationState) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		if !rec.Kind.Valid() {
			log.Error("Persisted state for unknown station skipped", "station", int(rec.Kind))
			continue
		}
		maxLevel := r.specs[rec.Kind].MaxLevel
		if rec.Level < 1 {
			log.Error("Persisted station level out of range, clamping", "station", rec.Kind.String(), "level", rec.Level)
			rec.Level = 1
		}
		if rec.Level > maxLevel {
			log.Error("Persisted station level out of range, clamping", "station", rec.Kind.String(), "level", rec.Level)
			rec.Level = maxLevel
		}
		// Unlocks never regress.
		rec.Unlocked = rec.Unlocked || r.states[rec.Kind].Unlocked
		r.states[rec.Kind] = rec
	}
}
