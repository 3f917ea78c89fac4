package driven

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
)

// Connector fetches documents from a remote project-management service.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// SourceID returns the configured source ID.
	SourceID() string

	// Validate checks if the connector is properly configured and
	// authenticated. Makes exactly one probe call against the remote
	// service; the result is discarded.
	Validate(ctx context.Context) error

	// ListProjects enumerates the remote projects. Any failure aborts
	// the enclosing ingestion run.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// FetchProject streams the fully built documents of one project,
	// comments attached as children, in pagination order.
	//
	// Skippable per-record failures are sent on the error channel as
	// *RecordError and do not stop the stream. Any other error aborts
	// the project's unit; partial results already sent stand, but no
	// further documents follow.
	FetchProject(ctx context.Context, project domain.Project) (<-chan domain.Document, <-chan error)

	// Close releases resources.
	Close() error
}

// RecordError is sent on a connector's error channel when a single record
// could not be built. The consumer logs it and continues with the stream.
type RecordError struct {
	// URL identifies the offending record.
	URL string

	// Err is the underlying build failure.
	Err error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s: %v", e.URL, e.Err)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// IsRecordError checks if an error is a skippable per-record failure.
// Returns the RecordError and true if it is, nil and false otherwise.
func IsRecordError(err error) (*RecordError, bool) {
	var re *RecordError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// ConnectorBuilder creates a Connector from a Source.
type ConnectorBuilder func(source domain.Source) (Connector, error)

// ConnectorFactory creates connectors from source configuration.
// It maintains a registry of connector types and their builders.
type ConnectorFactory interface {
	// Create returns a Connector for the given source.
	// Returns domain.ErrUnsupportedType if the source type is unknown.
	Create(ctx context.Context, source domain.Source) (Connector, error)

	// Register adds a connector builder for the given type.
	Register(connectorType string, builder ConnectorBuilder)

	// SupportedTypes returns all registered connector types.
	SupportedTypes() []string
}
