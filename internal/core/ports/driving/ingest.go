package driving

import "context"

// IngestStatus reports the progress of an ingestion run.
type IngestStatus struct {
	SourceID  string
	Running   bool
	Documents int
	Errors    int
}

// IngestOrchestrator coordinates document ingestion.
type IngestOrchestrator interface {
	// Run ingests one source: enumerates its projects and enqueues one
	// document per to-do. Returns an error only for run-level failures
	// (unknown source, failed probe, failed project enumeration);
	// per-project unit failures are reported and isolated.
	Run(ctx context.Context, sourceID string) error

	// RunAll ingests every configured source sequentially.
	RunAll(ctx context.Context) error

	// Status returns the live status for a source.
	Status(ctx context.Context, sourceID string) (*IngestStatus, error)
}
