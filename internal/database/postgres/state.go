package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Yumichan48/foxrunner/internal/database"
	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/logger"
	"github.com/Yumichan48/foxrunner/internal/repository"
)

// StateRepository persists engine state in PostgreSQL.
type StateRepository struct {
	pool *pgxpool.Pool
}

// NewStateRepository creates a new StateRepository
func NewStateRepository(pool *pgxpool.Pool) repository.State {
	return &StateRepository{pool: pool}
}

// SaveState writes the whole resumable state in one transaction.
func (r *StateRepository) SaveState(ctx context.Context, state domain.EngineState) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback state save", "error", rbErr)
		}
	}()

	for _, st := range state.Stations {
		_, err = tx.Exec(ctx,
			`INSERT INTO station_states (station, level, unlocked, updated_at)
			 VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (station) DO UPDATE
			 SET level = EXCLUDED.level, unlocked = EXCLUDED.unlocked, updated_at = NOW()`,
			st.Kind.String(), st.Level, st.Unlocked)
		if err != nil {
			return fmt.Errorf("failed to save station state: %w", err)
		}
	}

	for _, mp := range state.Mastery {
		_, err = tx.Exec(ctx,
			`INSERT INTO mastery_progress (station, level, xp, updated_at)
			 VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (station) DO UPDATE
			 SET level = EXCLUDED.level, xp = EXCLUDED.xp, updated_at = NOW()`,
			mp.Station.String(), mp.Level, mp.XP)
		if err != nil {
			return fmt.Errorf("failed to save mastery progress: %w", err)
		}
	}

	for material, quantity := range state.Ledger {
		_, err = tx.Exec(ctx,
			`INSERT INTO ledger_quantities (material, quantity, updated_at)
			 VALUES ($1, $2, NOW())
			 ON CONFLICT (material) DO UPDATE
			 SET quantity = EXCLUDED.quantity, updated_at = NOW()`,
			string(material), quantity)
		if err != nil {
			return fmt.Errorf("failed to save ledger quantity: %w", err)
		}
	}

	for _, recipeID := range state.KnownRecipes {
		_, err = tx.Exec(ctx,
			`INSERT INTO known_recipes (recipe_id) VALUES ($1) ON CONFLICT DO NOTHING`,
			recipeID)
		if err != nil {
			return fmt.Errorf("failed to save known recipe: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO engine_counters (name, value) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`,
		CounterTotalCrafted, state.TotalCrafted)
	if err != nil {
		return fmt.Errorf("failed to save crafted counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit state save: %w", err)
	}
	return nil
}

// LoadState reads the persisted state. The found flag is false when no row
// has ever been written, so callers can distinguish first boot from resume.
func (r *StateRepository) LoadState(ctx context.Context) (domain.EngineState, bool, error) {
	state := domain.EngineState{Ledger: make(map[domain.MaterialID]int)}
	found := false

	rows, err := r.pool.Query(ctx, `SELECT station, level, unlocked FROM station_states`)
	if err != nil {
		return state, false, fmt.Errorf("failed to load station states: %w", err)
	}
	for rows.Next() {
		var name string
		var st domain.StationState
		if err := rows.Scan(&name, &st.Level, &st.Unlocked); err != nil {
			rows.Close()
			return state, false, fmt.Errorf("failed to scan station state: %w", err)
		}
		kind, ok := domain.StationKindFromName(name)
		if !ok {
			logger.FromContext(ctx).Error("Persisted station has unknown kind, skipped", "station", name)
			continue
		}
		st.Kind = kind
		state.Stations = append(state.Stations, st)
		found = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return state, false, fmt.Errorf("failed to read station states: %w", err)
	}

	rows, err = r.pool.Query(ctx, `SELECT station, level, xp FROM mastery_progress`)
	if err != nil {
		return state, false, fmt.Errorf("failed to load mastery progress: %w", err)
	}
	for rows.Next() {
		var name string
		var mp domain.MasteryProgress
		if err := rows.Scan(&name, &mp.Level, &mp.XP); err != nil {
			rows.Close()
			return state, false, fmt.Errorf("failed to scan mastery progress: %w", err)
		}
		kind, ok := domain.StationKindFromName(name)
		if !ok {
			logger.FromContext(ctx).Error("Persisted mastery has unknown station, skipped", "station", name)
			continue
		}
		mp.Station = kind
		state.Mastery = append(state.Mastery, mp)
		found = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return state, false, fmt.Errorf("failed to read mastery progress: %w", err)
	}

	rows, err = r.pool.Query(ctx, `SELECT material, quantity FROM ledger_quantities`)
	if err != nil {
		return state, false, fmt.Errorf("failed to load ledger quantities: %w", err)
	}
	for rows.Next() {
		var material string
		var quantity int
		if err := rows.Scan(&material, &quantity); err != nil {
			rows.Close()
			return state, false, fmt.Errorf("failed to scan ledger quantity: %w", err)
		}
		state.Ledger[domain.MaterialID(material)] = quantity
		found = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return state, false, fmt.Errorf("failed to read ledger quantities: %w", err)
	}

	rows, err = r.pool.Query(ctx, `SELECT recipe_id FROM known_recipes ORDER BY unlocked_at`)
	if err != nil {
		return state, false, fmt.Errorf("failed to load known recipes: %w", err)
	}
	for rows.Next() {
		var recipeID string
		if err := rows.Scan(&recipeID); err != nil {
			rows.Close()
			return state, false, fmt.Errorf("failed to scan known recipe: %w", err)
		}
		state.KnownRecipes = append(state.KnownRecipes, recipeID)
		found = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return state, false, fmt.Errorf("failed to read known recipes: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT value FROM engine_counters WHERE name = $1`, CounterTotalCrafted).
		Scan(&state.TotalCrafted)
	switch {
	case err == pgx.ErrNoRows:
		// First boot, counter not written yet.
	case err != nil:
		return state, false, fmt.Errorf("failed to load crafted counter: %w", err)
	default:
		found = true
	}

	return state, found, nil
}
