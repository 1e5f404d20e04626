package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/attribution"
	"github.com/hanabenko/ticket-scraping-api/internal/config"
	"github.com/hanabenko/ticket-scraping-api/internal/connector"
	"github.com/hanabenko/ticket-scraping-api/internal/ingest"
	"github.com/hanabenko/ticket-scraping-api/internal/pipeline"
	"github.com/hanabenko/ticket-scraping-api/internal/repository"
	"github.com/hanabenko/ticket-scraping-api/internal/repository/clickhouse"
	"github.com/hanabenko/ticket-scraping-api/internal/repository/postgres"
	"github.com/hanabenko/ticket-scraping-api/internal/rollup"
)

// App holds the storage and compute components shared by every binary
type App struct {
	Store        *postgres.Repository
	Mirror       repository.InteractionMirror
	Ingester     *ingest.Ingester
	Attribution  *attribution.Engine
	Rollups      *rollup.Engine
	Orchestrator *pipeline.Orchestrator

	log *zap.Logger
}

// New connects the store, the optional mirror and wires the engines
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := postgres.NewClient(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, err
	}
	store := postgres.NewRepository(db, log.Named("postgres"))

	if cfg.Postgres.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		log.Info("Database schema migrated")
	}

	mirror := newMirror(ctx, cfg.ClickHouse, log)

	attributionConfig := attribution.DefaultConfig()
	attributionConfig.HalfLifeDays = cfg.Attribution.HalfLifeDays
	attributionEngine, err := attribution.NewEngine(store, attributionConfig, log.Named("attribution"))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	rollupEngine := rollup.NewEngine(store, log.Named("rollup"))
	ingester := ingest.NewIngester(store, mirror, log.Named("ingest"))

	loaderConfig := connector.DefaultLoaderConfig()
	loaderConfig.FetchTimeout = time.Duration(cfg.Pipeline.FetchTimeoutSec) * time.Second
	loader := connector.NewLoader(connector.DefaultRegistry(), loaderConfig, log.Named("loader"))

	orchestrator := pipeline.NewOrchestrator(loader, ingester, attributionEngine, rollupEngine, pipeline.Options{
		RecomputeTouchedDates: cfg.Pipeline.RecomputeTouchedDates,
	}, log.Named("pipeline"))

	return &App{
		Store:        store,
		Mirror:       mirror,
		Ingester:     ingester,
		Attribution:  attributionEngine,
		Rollups:      rollupEngine,
		Orchestrator: orchestrator,
		log:          log,
	}, nil
}

// newMirror returns nil when ClickHouse is not configured or unreachable
func newMirror(ctx context.Context, cfg config.ClickHouse, log *zap.Logger) repository.InteractionMirror {
	if !cfg.Enabled() {
		log.Info("Interaction mirror disabled")
		return nil
	}

	client, err := clickhouse.NewClient(ctx, &cfg, log)
	if err != nil {
		log.Error("Interaction mirror unavailable, continuing without it", zap.Error(err))
		return nil
	}

	mirror := clickhouse.NewRepository(client, log.Named("clickhouse"))
	if err := mirror.InitSchema(ctx); err != nil {
		log.Error("Failed to initialize mirror schema, continuing without it", zap.Error(err))
		_ = mirror.Close()
		return nil
	}
	return mirror
}

// Close releases the store and mirror connections
func (a *App) Close() {
	if a.Mirror != nil {
		if err := a.Mirror.Close(); err != nil {
			a.log.Error("Failed to close ClickHouse client", zap.Error(err))
		}
	}
	if err := a.Store.Close(); err != nil {
		a.log.Error("Failed to close Postgres connection", zap.Error(err))
	}
}
