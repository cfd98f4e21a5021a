package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/kartstats/internal/config"
	"github.com/HerbHall/kartstats/internal/dataset"
	"github.com/HerbHall/kartstats/internal/recommend"
	"github.com/HerbHall/kartstats/internal/services"
	"github.com/HerbHall/kartstats/internal/state"
	"github.com/HerbHall/kartstats/internal/store"
	"github.com/HerbHall/kartstats/pkg/models"
)

// app holds the wired components shared by the subcommands.
type app struct {
	settings config.Settings
	logger   *zap.Logger
	db       *store.SQLiteStore
	loader   *dataset.Loader
	state    *state.Store
}

// bootstrap loads configuration and wires persistence, the dataset loader
// and the state store. The roster is not loaded yet; call hydrate.
func bootstrap(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(settings.Log)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	a := &app{settings: settings, logger: logger}

	opts := []state.Option{
		state.WithLogger(logger.Named("state")),
		state.WithBonus(settings.Combination.Bonus),
		state.WithHistoryLimit(settings.Search.HistoryLimit),
		state.WithEngine(recommend.NewEngine(settings.Recommend, logger.Named("recommend"))),
	}
	if settings.Store.Enabled {
		docs, err := a.openDocuments(ctx)
		if err != nil {
			logger.Warn("persistence unavailable, saved data is session-only",
				zap.String("path", settings.Store.Path),
				zap.Error(err),
			)
		} else {
			opts = append(opts,
				state.WithCombinationRepository(services.NewCombinationRepository(docs)),
				state.WithHistoryRepository(services.NewHistoryRepository(docs)),
			)
		}
	}

	a.loader = dataset.NewLoader(logger.Named("dataset"), buildSources(settings.Dataset, logger.Named("dataset"))...)
	a.state = state.New(opts...)
	return a, nil
}

func (a *app) openDocuments(ctx context.Context) (services.DocumentRepository, error) {
	db, err := store.New(a.settings.Store.Path)
	if err != nil {
		return nil, err
	}
	docs, err := services.NewSQLiteDocumentRepository(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.db = db
	return docs, nil
}

// hydrate loads the roster and installs it. On failure the state is still
// hydrated, with an empty roster, so saved collections remain reachable.
func (a *app) hydrate(ctx context.Context) error {
	res, err := a.loader.Load(ctx)
	if err != nil {
		a.state.Hydrate(ctx, models.Roster{})
		return err
	}
	a.logger.Info("dataset loaded",
		zap.String("source", res.Source),
		zap.Int("characters", len(res.Roster.Characters)),
		zap.Int("vehicles", len(res.Roster.Vehicles)),
		zap.Int("dropped", len(res.Report.Dropped)),
		zap.Int("warnings", len(res.Report.Warnings)),
	)
	for _, w := range res.Report.Warnings {
		a.logger.Debug("dataset warning", zap.String("warning", w.String()))
	}
	a.state.Hydrate(ctx, res.Roster)
	return nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("closing database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// newLogger builds a production or development zap logger at the
// configured level.
func newLogger(ls config.LogSettings) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if ls.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	if ls.Level != "" {
		lvl, err := zap.ParseAtomicLevel(ls.Level)
		if err != nil {
			return nil, err
		}
		cfg.Level = lvl
	}
	return cfg.Build()
}

// buildSources returns the configured roster sources in priority order.
func buildSources(ds config.DatasetSettings, logger *zap.Logger) []dataset.Source {
	var sources []dataset.Source
	if ds.Structured != "" {
		sources = append(sources, dataset.NewStructuredSource(ds.Structured, ds.Fetch, logger))
	}
	if ds.Tabular != "" {
		sources = append(sources, dataset.NewTabularSource(ds.Tabular, ds.Fetch, logger))
	}
	if ds.Embedded {
		sources = append(sources, dataset.NewEmbeddedSource())
	}
	return sources
}
