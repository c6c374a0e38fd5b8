package production

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Yumichan48/foxrunner/internal/catalog"
	"github.com/Yumichan48/foxrunner/internal/config"
	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/event"
	"github.com/Yumichan48/foxrunner/internal/ledger"
	"github.com/Yumichan48/foxrunner/internal/logger"
	"github.com/Yumichan48/foxrunner/internal/mastery"
	"github.com/Yumichan48/foxrunner/internal/metrics"
	"github.com/Yumichan48/foxrunner/internal/station"
)

// Clock returns the current time. Injected so tests control the timeline.
type Clock func() time.Time

// Stats is a point-in-time view of production totals.
type Stats struct {
	TotalCrafted      int64            `json:"total_crafted"`
	QueueDepth        int              `json:"queue_depth"`
	ProducedByQuality map[string]int64 `json:"produced_by_quality"`
}

// Service is the production engine: it validates craft requests, schedules
// jobs, resolves completed ones into outputs, and owns the resumable state.
type Service interface {
	CanCraft(ctx context.Context, recipeID string, quantity int) error
	StartCrafting(ctx context.Context, recipeID string, quantity int) (domain.QueueItem, error)
	Cancel(ctx context.Context, jobID uuid.UUID) error
	CancelAll(ctx context.Context) int
	Advance(ctx context.Context, now time.Time) int
	QueueSnapshot(now time.Time) []domain.QueueSnapshotEntry

	UnlockRecipe(ctx context.Context, recipeID string) error
	UnlockStation(ctx context.Context, kind domain.StationKind) error
	UpgradeStation(ctx context.Context, kind domain.StationKind) error
	CompleteQuest(key string)

	MasteryLevel(kind domain.StationKind) (int, error)
	MasteryProgress(kind domain.StationKind) (domain.MasteryProgress, error)
	KnownRecipes() []string
	Stats() Stats

	ExportState() domain.EngineState
	RestoreState(ctx context.Context, state domain.EngineState)
}

type service struct {
	// mu serializes every mutation; the engine is a single-writer system.
	mu sync.Mutex

	catalog  *catalog.Catalog
	ledger   *ledger.Ledger
	stations *station.Registry
	mastery  *mastery.Tracker
	bus      event.Bus
	tuning   config.Tuning

	rng   *rand.Rand
	clock Clock

	queue        []*domain.QueueItem
	known        map[string]bool
	questFlags   map[string]bool
	totalCrafted int64
	byQuality    [domain.QualityTierCount]int64
}

// NewService creates the engine. Recipes without unlock gates are known from
// the start. The rand source drives outcome and quality rolls only; timing is
// fully deterministic.
func NewService(cat *catalog.Catalog, led *ledger.Ledger, stations *station.Registry, tracker *mastery.Tracker, bus event.Bus, tuning config.Tuning, rng *rand.Rand, clock Clock) Service {
	if clock == nil {
		clock = time.Now
	}
	s := &service{
		catalog:    cat,
		ledger:     led,
		stations:   stations,
		mastery:    tracker,
		bus:        bus,
		tuning:     tuning,
		rng:        rng,
		clock:      clock,
		known:      make(map[string]bool),
		questFlags: make(map[string]bool),
	}
	for _, id := range cat.AutoKnown() {
		s.known[id] = true
	}
	return s
}

// CanCraft reports whether a craft request would be accepted right now.
// A nil return means craftable; otherwise the sentinel error names the first
// failed check. It never mutates state.
func (s *service) CanCraft(ctx context.Context, recipeID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.validate(recipeID, quantity)
	return err
}

// validate runs the full craft admission check. Caller holds mu.
func (s *service) validate(recipeID string, quantity int) (*domain.Recipe, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, quantity)
	}

	recipe, err := s.catalog.Recipe(recipeID)
	if err != nil {
		return nil, err
	}
	if !s.known[recipe.ID] {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecipeLocked, recipe.ID)
	}
	if !s.stations.Unlocked(recipe.Station) {
		return nil, fmt.Errorf("%w: %s", domain.ErrStationLocked, recipe.Station)
	}
	if level := s.mastery.Level(recipe.Station); level < recipe.MinMastery {
		return nil, fmt.Errorf("%w: recipe '%s' needs %d at %s, have %d",
			domain.ErrInsufficientMastery, recipe.ID, recipe.MinMastery, recipe.Station, level)
	}
	for material, amount := range consumedCost(recipe, quantity) {
		if !s.ledger.Affordable(material, amount) {
			return nil, fmt.Errorf("%w: recipe '%s' needs %d %s", domain.ErrInsufficientMaterial, recipe.ID, amount, material)
		}
	}
	// Tool ingredients must be held but are never debited, and do not scale
	// with quantity.
	for _, ing := range recipe.Ingredients {
		if !ing.Consumed && !s.ledger.Affordable(ing.MaterialID, ing.Amount) {
			return nil, fmt.Errorf("%w: recipe '%s' needs tool %s", domain.ErrInsufficientMaterial, recipe.ID, ing.MaterialID)
		}
	}
	return recipe, nil
}

// StartCrafting admits a craft request: it debits all consumed ingredients in
// one all-or-nothing operation and schedules a job with a deterministic
// completion timestamp. Rejections leave the ledger untouched.
func (s *service) StartCrafting(ctx context.Context, recipeID string, quantity int) (domain.QueueItem, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) >= s.tuning.MaxQueueSize {
		metrics.CraftsRejected.WithLabelValues(RejectReasonQueueFull).Inc()
		return domain.QueueItem{}, fmt.Errorf("%w: %d jobs pending", domain.ErrQueueFull, len(s.queue))
	}

	recipe, err := s.validate(recipeID, quantity)
	if err != nil {
		metrics.CraftsRejected.WithLabelValues(rejectReason(err)).Inc()
		return domain.QueueItem{}, err
	}

	if err := s.ledger.DebitAll(ctx, consumedCost(recipe, quantity)); err != nil {
		metrics.CraftsRejected.WithLabelValues(RejectReasonMaterials).Inc()
		return domain.QueueItem{}, err
	}

	now := s.clock()
	duration := s.duration(recipe, quantity)
	job := &domain.QueueItem{
		ID:          uuid.New(),
		RecipeID:    recipe.ID,
		Station:     recipe.Station,
		Quantity:    quantity,
		StartedAt:   now,
		CompletesAt: now.Add(duration),
	}
	s.queue = append(s.queue, job)

	metrics.CraftsStarted.WithLabelValues(recipe.Station.String()).Inc()
	metrics.QueueDepth.Set(float64(len(s.queue)))
	log.Info("Craft started",
		"job_id", job.ID.String(),
		"recipe", recipe.ID,
		"quantity", quantity,
		"duration", duration.String())

	s.publish(ctx, event.NewCraftStartedEvent(*job))
	return *job, nil
}

// duration computes the scheduled job length. Caller holds mu.
//
// The mastery speed bonus floors at 10% of base duration and the batch factor
// floors at 50% of linear time.
func (s *service) duration(recipe *domain.Recipe, quantity int) time.Duration {
	factor := s.tuning.GlobalTimeMultiplier
	factor *= s.stations.SpeedMultiplier(recipe.Station)

	masteryLevel := s.mastery.Level(recipe.Station)
	factor *= math.Max(MinMasterySpeedFactor, 1.0-float64(masteryLevel)*s.tuning.MasterySpeedBonusPerLvl)

	if quantity > 1 && recipe.AllowsBatch {
		factor *= math.Max(MinBatchFactor, 1.0-BatchDiscountPerUnit*float64(quantity-1))
	}

	return time.Duration(float64(recipe.BaseCraftTime) * factor * float64(quantity))
}

// Cancel removes a not-yet-completed job and refunds every consumed
// ingredient in full.
func (s *service) Cancel(ctx context.Context, jobID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(ctx, jobID)
}

// CancelAll drains the queue with full refunds and returns the number of jobs
// cancelled. Used at shutdown under the drop-and-refund restart policy.
func (s *service) CancelAll(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancelled := 0
	for len(s.queue) > 0 {
		if err := s.cancelLocked(ctx, s.queue[0].ID); err != nil {
			logger.FromContext(ctx).Error("Failed to cancel job during drain", "error", err)
			break
		}
		cancelled++
	}
	return cancelled
}

func (s *service) cancelLocked(ctx context.Context, jobID uuid.UUID) error {
	idx := -1
	for i, job := range s.queue {
		if job.ID == jobID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}

	job := s.queue[idx]
	if job.Completed {
		return fmt.Errorf("%w: %s", domain.ErrJobCompleted, jobID)
	}

	recipe, err := s.catalog.Recipe(job.RecipeID)
	if err != nil {
		return err
	}

	refund := consumedCost(recipe, job.Quantity)
	s.ledger.CreditAll(ctx, refund)
	s.queue = append(s.queue[:idx], s.queue[idx+1:]...)

	metrics.CraftsCancelled.WithLabelValues(job.Station.String()).Inc()
	metrics.QueueDepth.Set(float64(len(s.queue)))
	logger.FromContext(ctx).Info("Craft cancelled", "job_id", job.ID.String(), "recipe", job.RecipeID)

	s.publish(ctx, event.NewCraftCancelledEvent(*job, refund))
	return nil
}

// Advance resolves every scheduled job whose completion time has passed and
// returns how many completed. Jobs resolve in queue order; events fire in the
// order their triggering state changes occur.
func (s *service) Advance(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := 0
	remaining := s.queue[:0]
	for _, job := range s.queue {
		if job.CompletesAt.After(now) {
			remaining = append(remaining, job)
			continue
		}
		s.resolveLocked(ctx, job)
		completed++
	}
	s.queue = remaining

	if completed > 0 {
		metrics.QueueDepth.Set(float64(len(s.queue)))
	}
	return completed
}

// resolveLocked turns a due job into outputs, experience, and events.
// A result entry whose target is missing from the catalog is logged and
// skipped; the rest of the job still resolves.
func (s *service) resolveLocked(ctx context.Context, job *domain.QueueItem) {
	log := logger.FromContext(ctx)

	recipe, err := s.catalog.Recipe(job.RecipeID)
	if err != nil {
		log.Error("Job references unknown recipe, dropping without outputs", "job_id", job.ID.String(), "recipe", job.RecipeID)
		job.Completed = true
		return
	}

	masteryLevel := s.mastery.Level(job.Station)
	upgradeChance := s.tuning.BaseQualityUpgradeChance + float64(masteryLevel)*s.tuning.MasteryQualityBonusPerLvl

	var produced []domain.ProducedUnit
	for _, result := range recipe.Results {
		if result.Kind == domain.ResultMaterial {
			if _, ok := s.catalog.Material(domain.MaterialID(result.TargetID)); !ok {
				log.Error("Result references missing catalog entry, skipping",
					"recipe", recipe.ID, "target", result.TargetID)
				continue
			}
		}

		for i := 0; i < job.Quantity; i++ {
			if s.rng.Float64() >= result.Chance {
				continue
			}

			quality := result.BaseQuality
			if s.rng.Float64() < upgradeChance {
				quality = quality.Upgraded()
			}

			unit := domain.ProducedUnit{
				Kind:     result.Kind,
				TargetID: result.TargetID,
				Amount:   result.Amount,
				Quality:  quality,
			}
			s.deliverLocked(ctx, unit)
			produced = append(produced, unit)
		}
	}

	xp := recipe.XPReward * job.Quantity
	if _, _, err := s.mastery.AddExperience(ctx, job.Station, xp); err != nil {
		log.Error("Failed to award mastery experience", "error", err, "job_id", job.ID.String())
	}

	job.Completed = true
	metrics.CraftsCompleted.WithLabelValues(job.Station.String()).Inc()
	log.Info("Craft completed",
		"job_id", job.ID.String(),
		"recipe", recipe.ID,
		"units_produced", len(produced),
		"xp_awarded", xp)

	s.publish(ctx, event.NewCraftCompletedEvent(*job, produced, xp))
}

// deliverLocked routes one produced unit: materials credit the ledger, while
// equipment and currency go out as events to their collaborator systems.
func (s *service) deliverLocked(ctx context.Context, unit domain.ProducedUnit) {
	switch unit.Kind {
	case domain.ResultMaterial:
		s.ledger.Add(ctx, domain.MaterialID(unit.TargetID), unit.Amount)
	case domain.ResultEquipment, domain.ResultCurrency:
		s.publish(ctx, event.NewOutputProducedEvent(unit))
	}

	s.totalCrafted += int64(unit.Amount)
	s.byQuality[unit.Quality] += int64(unit.Amount)
	metrics.UnitsProduced.WithLabelValues(string(unit.Kind), unit.Quality.String()).Add(float64(unit.Amount))
}

// QueueSnapshot returns the pending jobs in schedule order with their
// progress fraction at the given instant.
func (s *service) QueueSnapshot(now time.Time) []domain.QueueSnapshotEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.QueueSnapshotEntry, len(s.queue))
	for i, job := range s.queue {
		out[i] = domain.QueueSnapshotEntry{
			ID:          job.ID,
			RecipeID:    job.RecipeID,
			Station:     job.Station,
			Quantity:    job.Quantity,
			StartedAt:   job.StartedAt,
			CompletesAt: job.CompletesAt,
			Progress:    job.Progress(now),
		}
	}
	return out
}

// UnlockRecipe marks a recipe known if its gate passes. Unlocking an
// already-known recipe is a no-op.
func (s *service) UnlockRecipe(ctx context.Context, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, err := s.catalog.Recipe(recipeID)
	if err != nil {
		return err
	}
	if s.known[recipe.ID] {
		return nil
	}

	known := func(id string) bool { return s.known[id] }
	if err := s.catalog.GateSatisfied(recipe, s.mastery.Level(recipe.Station), known, s.questFlags); err != nil {
		return err
	}

	s.known[recipe.ID] = true
	logger.FromContext(ctx).Info("Recipe unlocked", "recipe", recipe.ID)
	s.publish(ctx, event.NewRecipeUnlockedEvent(recipe.ID))
	return nil
}

// UnlockStation delegates to the registry.
func (s *service) UnlockStation(ctx context.Context, kind domain.StationKind) error {
	return s.stations.Unlock(ctx, kind)
}

// UpgradeStation delegates to the registry.
func (s *service) UpgradeStation(ctx context.Context, kind domain.StationKind) error {
	return s.stations.Upgrade(ctx, kind)
}

// CompleteQuest records a quest completion flag consumed by recipe gates.
func (s *service) CompleteQuest(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questFlags[key] = true
}

func (s *service) MasteryLevel(kind domain.StationKind) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %d", domain.ErrUnknownStationKind, kind)
	}
	return s.mastery.Level(kind), nil
}

func (s *service) MasteryProgress(kind domain.StationKind) (domain.MasteryProgress, error) {
	if !kind.Valid() {
		return domain.MasteryProgress{}, fmt.Errorf("%w: %d", domain.ErrUnknownStationKind, kind)
	}
	return s.mastery.Progress(kind), nil
}

// KnownRecipes returns the known recipe IDs in catalog order.
func (s *service) KnownRecipes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.knownLocked()
}

func (s *service) knownLocked() []string {
	var out []string
	for _, recipe := range s.catalog.Recipes() {
		if s.known[recipe.ID] {
			out = append(out, recipe.ID)
		}
	}
	return out
}

// Stats returns production totals for the stats endpoint.
func (s *service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	byQuality := make(map[string]int64, domain.QualityTierCount)
	for tier, count := range s.byQuality {
		if count > 0 {
			byQuality[domain.QualityTier(tier).String()] = count
		}
	}
	return Stats{
		TotalCrafted:      s.totalCrafted,
		QueueDepth:        len(s.queue),
		ProducedByQuality: byQuality,
	}
}

// ExportState captures the resumable state. The queue is excluded: in-flight
// jobs are refunded via CancelAll before shutdown.
func (s *service) ExportState() domain.EngineState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.EngineState{
		Stations:     s.stations.Snapshot(),
		Mastery:      s.mastery.Snapshot(),
		Ledger:       s.ledger.Snapshot(),
		KnownRecipes: s.knownLocked(),
		TotalCrafted: s.totalCrafted,
	}
}

// RestoreState overwrites the resumable state from a persisted record.
// Unknown recipe IDs are logged and dropped.
func (s *service) RestoreState(ctx context.Context, state domain.EngineState) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stations.Restore(ctx, state.Stations)
	s.mastery.Restore(ctx, state.Mastery)
	s.ledger.Restore(ctx, state.Ledger)

	s.known = make(map[string]bool, len(state.KnownRecipes))
	for _, id := range s.catalog.AutoKnown() {
		s.known[id] = true
	}
	for _, id := range state.KnownRecipes {
		if _, err := s.catalog.Recipe(id); err != nil {
			log.Error("Persisted known recipe missing from catalog, dropped", "recipe", id)
			continue
		}
		s.known[id] = true
	}

	if state.TotalCrafted < 0 {
		log.Error("Persisted crafted counter negative, clamping", "value", state.TotalCrafted)
		state.TotalCrafted = 0
	}
	s.totalCrafted = state.TotalCrafted
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error("Failed to publish event", "error", err, "type", string(evt.Type))
	}
}

// consumedCost is the total debit of a craft request: consumed ingredient
// amounts scaled by quantity. Tool ingredients are excluded.
func consumedCost(recipe *domain.Recipe, quantity int) map[domain.MaterialID]int {
	costs := make(map[domain.MaterialID]int, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		if !ing.Consumed {
			continue
		}
		costs[ing.MaterialID] += ing.Amount * quantity
	}
	return costs
}

// rejectReason maps a validation error to its metrics label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound), errors.Is(err, domain.ErrRecipeLocked):
		return RejectReasonRecipe
	case errors.Is(err, domain.ErrStationLocked):
		return RejectReasonStation
	case errors.Is(err, domain.ErrInsufficientMastery):
		return RejectReasonMastery
	case errors.Is(err, domain.ErrInsufficientMaterial):
		return RejectReasonMaterials
	case errors.Is(err, domain.ErrInvalidQuantity):
		return RejectReasonQuantity
	default:
		return RejectReasonOther
	}
}
