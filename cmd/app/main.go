package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yumichan48/foxrunner/internal/catalog"
	"github.com/Yumichan48/foxrunner/internal/config"
	"github.com/Yumichan48/foxrunner/internal/database"
	"github.com/Yumichan48/foxrunner/internal/database/postgres"
	"github.com/Yumichan48/foxrunner/internal/database/schema"
	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/event"
	"github.com/Yumichan48/foxrunner/internal/ledger"
	"github.com/Yumichan48/foxrunner/internal/mastery"
	"github.com/Yumichan48/foxrunner/internal/production"
	"github.com/Yumichan48/foxrunner/internal/scheduler"
	"github.com/Yumichan48/foxrunner/internal/server"
	"github.com/Yumichan48/foxrunner/internal/station"
	"github.com/Yumichan48/foxrunner/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	connStr := cfg.GetDBConnString()
	if err := schema.Migrate(connStr); err != nil {
		return err
	}

	pool, err := database.NewPool(connStr, database.DefaultMaxConnections,
		database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	catalogLoader, err := catalog.NewLoader()
	if err != nil {
		return err
	}
	cat, err := catalogLoader.Load(cfg.ConfigDir)
	if err != nil {
		return err
	}

	bus := event.NewMemoryBus()
	led := ledger.New(cat.Materials(), bus)
	tracker := mastery.New(bus)
	wallet := station.NewMemoryWallet()

	// Crafted currency funds station upgrades.
	bus.Subscribe(event.Type(domain.EventTypeOutputProduced), station.CreditOutputs(wallet))

	stations, err := station.New(cat.StationSpecs(), led, wallet, tracker, bus)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := production.NewService(cat, led, stations, tracker, bus, cfg.Tuning, rng, time.Now)

	stateRepo := postgres.NewStateRepository(pool)
	state, found, err := stateRepo.LoadState(ctx)
	if err != nil {
		return err
	}
	if found {
		engine.RestoreState(ctx, state)
		slog.Info("Engine state restored",
			"known_recipes", len(state.KnownRecipes),
			"total_crafted", state.TotalCrafted)
	}

	// Queue resolution runs on a single worker so Advance calls never overlap.
	workerPool := worker.NewPool(1, 16)
	workerPool.Start()

	sched := scheduler.New(workerPool)
	sched.Schedule(cfg.Tuning.TickInterval, worker.NewAdvanceJob(engine, time.Now))

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool, cat, led, stations, engine, time.Now)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}

	sched.Stop()
	workerPool.Stop()

	// Drop-and-refund policy: pending jobs are cancelled with full refunds so
	// the persisted ledger already contains the returned ingredients.
	cancelled := engine.CancelAll(shutdownCtx)
	if cancelled > 0 {
		slog.Info("Pending jobs refunded on shutdown", "count", cancelled)
	}

	if err := stateRepo.SaveState(shutdownCtx, engine.ExportState()); err != nil {
		slog.Error("Failed to persist engine state", "error", err)
	}

	slog.Info("Server stopped")
	return nil
}
