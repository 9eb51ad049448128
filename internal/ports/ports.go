package ports

import (
	"context"

	"TitleSync/internal/domain"
)

// TitleExtractor turns a page snapshot into one raw record (structured or
// DOM-scraped) plus the auxiliary region values. Implementations must be
// pure over the snapshot: same markup, same output.
type TitleExtractor interface {
	Extract(snapshot domain.PageSnapshot) (domain.Extraction, error)
}

// RemoteStore is the CRUD contract of the external record repository.
// Lookups return nil (not an error) on a clean miss; transport failures wrap
// domain.ErrStoreUnreachable and non-2xx responses surface as
// *domain.StoreError.
type RemoteStore interface {
	FindByExternalID(ctx context.Context, externalID string) (*domain.RemoteRecord, error)
	FindByTitle(ctx context.Context, title, originalTitle string) ([]domain.RemoteRecord, error)
	Create(ctx context.Context, fields domain.TitleFields) (domain.RemoteRecord, error)
	Update(ctx context.Context, id string, fields domain.TitleFields) (domain.RemoteRecord, error)
	Delete(ctx context.Context, id string) error
}

// RunJournal appends one audit row per pipeline run. It records provenance,
// never store contents; a journal failure must not fail the run.
type RunJournal interface {
	Append(ctx context.Context, entry domain.RunEntry) error
}
