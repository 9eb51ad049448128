package journal

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"TitleSync/internal/domain"
	"TitleSync/internal/ports"
)

// PostgresJournal appends pipeline run audit rows to Postgres. It stores
// provenance only (what ran, against which page, with what outcome), never a
// copy of store contents.
type PostgresJournal struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.RunJournal = (*PostgresJournal)(nil)

// NewPostgresJournal wires a sql.DB implementation.
func NewPostgresJournal(db *sql.DB) *PostgresJournal {
	return &PostgresJournal{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Append inserts one run row.
func (j *PostgresJournal) Append(ctx context.Context, entry domain.RunEntry) error {
	if j.db == nil {
		return nil
	}

	query, args, err := j.buildInsert(entry)
	if err != nil {
		return fmt.Errorf("build journal insert: %w", err)
	}

	if _, err := j.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert journal row: %w", err)
	}
	return nil
}

func (j *PostgresJournal) buildInsert(entry domain.RunEntry) (string, []any, error) {
	return j.builder.
		Insert("pipeline_runs").
		Columns("run_id", "source_url", "external_id", "title", "outcome", "record_id", "error").
		Values(entry.RunID, entry.SourceURL, entry.ExternalID, entry.Title, entry.Outcome, entry.RecordID, entry.Error).
		ToSql()
}
