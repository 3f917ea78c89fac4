package domain

import "time"

// Source represents a configured data source.
// Each source produces documents via a connector.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Type identifies the connector type (currently "basecamp").
	Type string

	// Name is the human-readable name for this source.
	Name string

	// Config contains connector-specific configuration.
	// For Basecamp: url, username, password.
	Config map[string]string

	// CreatedAt is when the source was created.
	CreatedAt time.Time

	// UpdatedAt is when the source was last updated.
	UpdatedAt time.Time
}

// IngestRun records one completed ingestion run for a source.
type IngestRun struct {
	// ID is the unique identifier for the run.
	ID string

	// SourceID links to the Source that was ingested.
	SourceID string

	// StartedAt and EndedAt bound the run.
	StartedAt time.Time
	EndedAt   time.Time

	// Documents is the number of documents enqueued.
	Documents int

	// UnitErrors is the number of failed project units and skipped records.
	UnitErrors int

	// Error holds the run-level failure, empty on success.
	Error string
}
