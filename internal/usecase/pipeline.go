package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"TitleSync/internal/domain"
	"TitleSync/internal/normalize"
	"TitleSync/internal/ports"
)

// PipelineDeps wires all driven adapters into the extraction pipeline.
type PipelineDeps struct {
	Extractor ports.TitleExtractor
	Store     ports.RemoteStore
	Journal   ports.RunJournal
	Logger    *slog.Logger
}

// Pipeline implements one extraction+reconciliation run over a page
// snapshot: locate/scrape → normalize → reconcile, with an audit row
// appended at the end whatever happened.
type Pipeline struct {
	extractor  ports.TitleExtractor
	reconciler *Reconciler
	journal    ports.RunJournal
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		extractor:  deps.Extractor,
		reconciler: NewReconciler(deps.Store, deps.Logger),
		journal:    deps.Journal,
		logger:     deps.Logger,
	}
}

// Extract runs extraction and normalization only, without touching the
// remote store. Callers that want to review or correct fields before the
// write use this and then feed the edited record to Reconcile.
func (p *Pipeline) Extract(snapshot domain.PageSnapshot) (domain.ExtractedTitle, error) {
	if p.extractor == nil {
		return domain.ExtractedTitle{}, fmt.Errorf("extractor is not configured")
	}

	extraction, err := p.extractor.Extract(snapshot)
	if err != nil {
		return domain.ExtractedTitle{}, fmt.Errorf("extract %s: %w", snapshot.URL, err)
	}

	extracted, err := normalize.Title(extraction, snapshot)
	if err != nil {
		return domain.ExtractedTitle{}, fmt.Errorf("normalize %s: %w", snapshot.URL, err)
	}
	return extracted, nil
}

// Reconcile writes an already-extracted title to the store and journals the
// run outcome.
func (p *Pipeline) Reconcile(ctx context.Context, extracted domain.ExtractedTitle) (domain.ReconcileResult, error) {
	runID := uuid.NewString()
	result, err := p.reconciler.Reconcile(ctx, extracted)
	p.journalRun(ctx, runID, extracted, result, err)
	if err != nil {
		return domain.ReconcileResult{}, err
	}

	p.debug("run finished", "run_id", runID,
		"outcome", string(result.Outcome), "record_id", result.Record.ID)
	return result, nil
}

// Run performs a full pipeline pass over one snapshot.
func (p *Pipeline) Run(ctx context.Context, snapshot domain.PageSnapshot) (domain.ReconcileResult, error) {
	extracted, err := p.Extract(snapshot)
	if err != nil {
		p.journalRun(ctx, uuid.NewString(), domain.ExtractedTitle{SourceURL: snapshot.URL}, domain.ReconcileResult{}, err)
		return domain.ReconcileResult{}, err
	}

	p.debug("extracted title", "url", snapshot.URL,
		"title", extracted.Title, "external_id", extracted.ExternalID, "category", string(extracted.Category))

	return p.Reconcile(ctx, extracted)
}

// journalRun appends the audit row; journal problems are logged, never
// escalated into run failures.
func (p *Pipeline) journalRun(ctx context.Context, runID string, extracted domain.ExtractedTitle, result domain.ReconcileResult, runErr error) {
	if p.journal == nil {
		return
	}

	entry := domain.RunEntry{
		RunID:      runID,
		SourceURL:  extracted.SourceURL,
		ExternalID: extracted.ExternalID,
		Title:      extracted.Title,
		Outcome:    string(result.Outcome),
		RecordID:   result.Record.ID,
	}
	if runErr != nil {
		entry.Outcome = "failed"
		entry.Error = runErr.Error()
	}

	if err := p.journal.Append(ctx, entry); err != nil && p.logger != nil {
		p.logger.Warn("journal append failed", "run_id", runID, "error", err)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
