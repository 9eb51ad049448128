package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"TitleSync/internal/config"
	"TitleSync/internal/domain"
	journalpg "TitleSync/internal/infrastructure/journal"
	"TitleSync/internal/infrastructure/parser"
	"TitleSync/internal/infrastructure/store"
	"TitleSync/internal/logging"
	"TitleSync/internal/ports"
	"TitleSync/internal/usecase"
)

// Application wires configuration to adapters and the pipeline use case.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	store    ports.RemoteStore
	db       *sql.DB
}

// New builds a runnable application instance. The Postgres journal is only
// opened when a DSN is configured.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	source := parser.NewPageSource(baseLogger.With("component", "parser"))
	storeClient := store.NewClient(cfg.Store)

	var (
		runJournal ports.RunJournal
		db         *sql.DB
	)
	if cfg.Journal.DSN != "" {
		opened, err := sql.Open("postgres", cfg.Journal.DSN)
		if err != nil {
			return nil, fmt.Errorf("open journal database: %w", err)
		}
		db = opened
		runJournal = journalpg.NewPostgresJournal(db)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Extractor: source,
		Store:     storeClient,
		Journal:   runJournal,
		Logger:    baseLogger.With("component", "pipeline"),
	})

	return &Application{
		cfg:      cfg,
		pipeline: pipeline,
		store:    storeClient,
		db:       db,
	}, nil
}

// Sync runs the full pipeline over one page snapshot.
func (a *Application) Sync(ctx context.Context, snapshot domain.PageSnapshot) (domain.ReconcileResult, error) {
	return a.pipeline.Run(ctx, snapshot)
}

// Extract runs extraction and normalization only; no store calls.
func (a *Application) Extract(snapshot domain.PageSnapshot) (domain.ExtractedTitle, error) {
	return a.pipeline.Extract(snapshot)
}

// Delete removes a store record by id; deleting an absent id succeeds.
func (a *Application) Delete(ctx context.Context, id string) error {
	return a.store.Delete(ctx, id)
}

// Close releases the journal database handle, if one was opened.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
