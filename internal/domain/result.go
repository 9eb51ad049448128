package domain

// ReconcileOutcome tells the caller whether reconciliation created a new
// record or updated an existing one.
type ReconcileOutcome string

const (
	OutcomeCreated ReconcileOutcome = "created"
	OutcomeUpdated ReconcileOutcome = "updated"
)

// ReconcileResult is the terminal value of a successful pipeline run.
type ReconcileResult struct {
	Outcome ReconcileOutcome
	Record  RemoteRecord
}

// RunEntry is one audit row describing a pipeline run: what page was
// processed, which record it resolved to, and how the run ended.
type RunEntry struct {
	RunID      string
	SourceURL  string
	ExternalID string
	Title      string
	Outcome    string
	RecordID   string
	Error      string
}
