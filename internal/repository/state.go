package repository

import (
	"context"

	"github.com/Yumichan48/foxrunner/internal/domain"
)

// State persists the engine's resumable state: station levels and unlock
// flags, mastery progress, ledger quantities, known recipe ids, and the
// total crafted counter. In-flight queue jobs are never persisted.
type State interface {
	SaveState(ctx context.Context, state domain.EngineState) error
	// LoadState returns the persisted state and whether any state existed.
	LoadState(ctx context.Context) (domain.EngineState, bool, error)
}
