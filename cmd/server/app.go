package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/distill-api/internal/config"
	"github.com/phrazzld/distill-api/internal/generation"
	"github.com/phrazzld/distill-api/internal/platform/backend"
	"github.com/phrazzld/distill-api/internal/platform/postgres"
	"github.com/phrazzld/distill-api/internal/redact"
	"github.com/phrazzld/distill-api/internal/runlog"
	"github.com/phrazzld/distill-api/internal/service"
)

// application holds the shared dependencies so they can be cleaned up on
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is set only for the postgres run-log driver.
	db *sql.DB

	generator generation.Generator
	runLog    runlog.Sink
	extractor *service.Extractor
}

// newApplication wires the generator, run-log sink, and extraction service
// from cfg.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.generator, err = backend.New(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized",
		slog.String("provider", cfg.LLM.Provider),
		slog.String("model", app.generator.Model()),
		slog.Int("max_attempts", cfg.LLM.MaxAttempts))

	app.runLog, app.db, err = newRunLogSink(ctx, cfg.RunLog, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize run log: %w", err)
	}

	app.extractor, err = service.NewExtractor(app.generator, app.runLog, cfg.LLM.Temperature, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// newRunLogSink selects the run-log sink by cfg.Driver. The returned *sql.DB
// is non-nil only for the postgres driver.
func newRunLogSink(ctx context.Context, cfg config.RunLogConfig, logger *slog.Logger) (runlog.Sink, *sql.DB, error) {
	switch cfg.Driver {
	case config.RunLogDriverNone:
		logger.Info("run log disabled")
		return runlog.NopSink{}, nil, nil

	case config.RunLogDriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, errors.New(redact.Error(err))
		}
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("run log writing to postgres")
		return postgres.NewRunStore(db, logger), db, nil

	default:
		sink, err := runlog.NewFileSink(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("run log writing to file", slog.String("path", sink.Path()))
		return sink, nil, nil
	}
}

// Run serves HTTP until ctx is cancelled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
