package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"TitleSync/internal/domain"
	"TitleSync/internal/ports"
)

// Reconciler decides create vs. update for one extracted title and issues
// the write. Lookups are strictly sequential: the external-id key wins and
// short-circuits the title-pair lookup.
type Reconciler struct {
	store  ports.RemoteStore
	logger *slog.Logger
}

// NewReconciler wires the remote store adapter.
func NewReconciler(store ports.RemoteStore, logger *slog.Logger) *Reconciler {
	return &Reconciler{store: store, logger: logger}
}

// Reconcile resolves the record identity and writes the extracted fields.
// Extracted data is authoritative for the shared field set; store-only
// fields are never part of the payload. Running it twice with the same
// input converges on the same record contents.
func (r *Reconciler) Reconcile(ctx context.Context, extracted domain.ExtractedTitle) (domain.ReconcileResult, error) {
	if extracted.Title == "" {
		return domain.ReconcileResult{}, domain.ErrNoExtractableData
	}

	match, err := r.resolve(ctx, extracted)
	if err != nil {
		return domain.ReconcileResult{}, err
	}

	if match == nil {
		record, err := r.store.Create(ctx, extracted.Fields())
		if err != nil {
			return domain.ReconcileResult{}, fmt.Errorf("create record: %w", err)
		}
		return domain.ReconcileResult{Outcome: domain.OutcomeCreated, Record: record}, nil
	}

	record, err := r.store.Update(ctx, match.ID, extracted.Fields())
	if err != nil {
		return domain.ReconcileResult{}, fmt.Errorf("update record %s: %w", match.ID, err)
	}
	return domain.ReconcileResult{Outcome: domain.OutcomeUpdated, Record: record}, nil
}

func (r *Reconciler) resolve(ctx context.Context, extracted domain.ExtractedTitle) (*domain.RemoteRecord, error) {
	if extracted.ExternalID != "" {
		record, err := r.store.FindByExternalID(ctx, extracted.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("lookup by external id %s: %w", extracted.ExternalID, err)
		}
		if record != nil {
			r.debug("matched by external id", "external_id", extracted.ExternalID, "record_id", record.ID)
			return record, nil
		}
	}

	candidates, err := r.store.FindByTitle(ctx, extracted.Title, extracted.OriginalTitle)
	if err != nil {
		return nil, fmt.Errorf("lookup by title: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	if len(candidates) > 1 && r.logger != nil {
		r.logger.Warn("ambiguous title match, taking first candidate",
			"title", extracted.Title, "candidates", len(candidates))
	}

	r.debug("matched by title", "title", extracted.Title, "record_id", candidates[0].ID)
	return &candidates[0], nil
}

func (r *Reconciler) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
