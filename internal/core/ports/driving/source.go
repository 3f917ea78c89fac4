package driving

import (
	"context"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
)

// SourceService manages source configurations.
type SourceService interface {
	// Add validates and stores a new source. The supplied credentials
	// are probed against the remote service before the source is
	// accepted; a failed probe surfaces domain.ErrInvalidConfiguration.
	Add(ctx context.Context, source domain.Source) error

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Remove deletes a source.
	Remove(ctx context.Context, id string) error
}
