package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/event"
	"github.com/Yumichan48/foxrunner/internal/logger"
)

// Change reports the before/after quantities of a successful mutation.
type Change struct {
	Material domain.MaterialID
	Old      int
	New      int
}

// Ledger tracks held quantities for every catalog material. Quantities are
// never negative and never exceed the material's stack cap. All mutations go
// through a single mutex so a multi-material debit is observed atomically.
type Ledger struct {
	mu         sync.Mutex
	caps       map[domain.MaterialID]int
	quantities map[domain.MaterialID]int
	bus        event.Bus
}

// New creates a ledger with a zero-quantity entry for every catalog material.
// Entries are never destroyed afterwards, only reset.
func New(materials []domain.Material, bus event.Bus) *Ledger {
	l := &Ledger{
		caps:       make(map[domain.MaterialID]int, len(materials)),
		quantities: make(map[domain.MaterialID]int, len(materials)),
		bus:        bus,
	}
	for _, m := range materials {
		l.caps[m.ID] = m.MaxStack
		l.quantities[m.ID] = 0
	}
	return l
}

// Add credits a material, clamping the new total at the stack cap.
func (l *Ledger) Add(ctx context.Context, material domain.MaterialID, amount int) (Change, error) {
	if amount < 0 {
		return Change{}, fmt.Errorf("%w: add %d %s", domain.ErrNegativeAmount, amount, material)
	}

	l.mu.Lock()
	limit, ok := l.caps[material]
	if !ok {
		l.mu.Unlock()
		return Change{}, fmt.Errorf("%w: %s", domain.ErrUnknownMaterial, material)
	}
	old := l.quantities[material]
	next := old + amount
	if next > limit {
		next = limit
	}
	l.quantities[material] = next
	l.mu.Unlock()

	change := Change{Material: material, Old: old, New: next}
	l.notify(ctx, change)
	return change, nil
}

// Remove debits a material. It fails with no mutation if the held quantity is
// less than requested; insufficiency is an ordinary result, not an exception.
func (l *Ledger) Remove(ctx context.Context, material domain.MaterialID, amount int) (Change, error) {
	if amount < 0 {
		return Change{}, fmt.Errorf("%w: remove %d %s", domain.ErrNegativeAmount, amount, material)
	}

	l.mu.Lock()
	if _, ok := l.caps[material]; !ok {
		l.mu.Unlock()
		return Change{}, fmt.Errorf("%w: %s", domain.ErrUnknownMaterial, material)
	}
	old := l.quantities[material]
	if old < amount {
		l.mu.Unlock()
		return Change{}, fmt.Errorf("%w: %s (need %d, have %d)", domain.ErrInsufficientMaterial, material, amount, old)
	}
	next := old - amount
	l.quantities[material] = next
	l.mu.Unlock()

	change := Change{Material: material, Old: old, New: next}
	l.notify(ctx, change)
	return change, nil
}

// Quantity returns the held amount, 0 for unknown materials.
func (l *Ledger) Quantity(material domain.MaterialID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quantities[material]
}

// Affordable reports whether at least amount of material is held.
func (l *Ledger) Affordable(material domain.MaterialID, amount int) bool {
	return l.Quantity(material) >= amount
}

// DebitAll removes every listed amount as a single all-or-nothing operation.
// If any material is insufficient the ledger is left untouched.
func (l *Ledger) DebitAll(ctx context.Context, costs map[domain.MaterialID]int) error {
	l.mu.Lock()
	for material, amount := range costs {
		if _, ok := l.caps[material]; !ok {
			l.mu.Unlock()
			return fmt.Errorf("%w: %s", domain.ErrUnknownMaterial, material)
		}
		if held := l.quantities[material]; held < amount {
			l.mu.Unlock()
			return fmt.Errorf("%w: %s (need %d, have %d)", domain.ErrInsufficientMaterial, material, amount, held)
		}
	}

	changes := make([]Change, 0, len(costs))
	for material, amount := range costs {
		old := l.quantities[material]
		l.quantities[material] = old - amount
		changes = append(changes, Change{Material: material, Old: old, New: old - amount})
	}
	l.mu.Unlock()

	for _, c := range changes {
		l.notify(ctx, c)
	}
	return nil
}

// CreditAll adds every listed amount, clamping each at its cap. Used for
// refunds; credits cannot fail, overflow above a cap is forfeited.
func (l *Ledger) CreditAll(ctx context.Context, amounts map[domain.MaterialID]int) {
	log := logger.FromContext(ctx)

	l.mu.Lock()
	changes := make([]Change, 0, len(amounts))
	for material, amount := range amounts {
		limit, ok := l.caps[material]
		if !ok {
			log.Error("Credit for unknown material skipped", "material", material, "amount", amount)
			continue
		}
		old := l.quantities[material]
		next := old + amount
		if next > limit {
			next = limit
		}
		l.quantities[material] = next
		changes = append(changes, Change{Material: material, Old: old, New: next})
	}
	l.mu.Unlock()

	for _, c := range changes {
		l.notify(ctx, c)
	}
}

// Snapshot returns a copy of all held quantities.
func (l *Ledger) Snapshot() map[domain.MaterialID]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[domain.MaterialID]int, len(l.quantities))
	for id, qty := range l.quantities {
		out[id] = qty
	}
	return out
}

// Restore overwrites quantities from persisted state. Unknown materials are
// skipped and values are clamped into [0, cap]; a clamp means the stored state
// violated an invariant and is logged as such.
func (l *Ledger) Restore(ctx context.Context, quantities map[domain.MaterialID]int) {
	log := logger.FromContext(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	for material, qty := range quantities {
		limit, ok := l.caps[material]
		if !ok {
			log.Error("Persisted quantity for unknown material skipped", "material", material)
			continue
		}
		if qty < 0 || qty > limit {
			log.Error("Persisted quantity out of range, clamping", "material", material, "quantity", qty, "cap", limit)
			if qty < 0 {
				qty = 0
			} else {
				qty = limit
			}
		}
		l.quantities[material] = qty
	}
}

// Reset zeroes every entry.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id := range l.quantities {
		l.quantities[id] = 0
	}
}

func (l *Ledger) notify(ctx context.Context, c Change) {
	if l.bus == nil {
		return
	}
	if err := l.bus.Publish(ctx, event.NewLedgerChangedEvent(c.Material, c.Old, c.New)); err != nil {
		logger.FromContext(ctx).Error("Failed to publish ledger change", "error", err, "material", c.Material)
	}
}
