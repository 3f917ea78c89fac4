package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages source configurations.
// Adding a source probes the remote service once before accepting it.
type SourceService struct {
	sourceStore driven.SourceStore
	factory     driven.ConnectorFactory
	reporter    driven.Reporter
}

// NewSourceService creates a new source service.
func NewSourceService(
	sourceStore driven.SourceStore,
	factory driven.ConnectorFactory,
	reporter driven.Reporter,
) *SourceService {
	return &SourceService{
		sourceStore: sourceStore,
		factory:     factory,
		reporter:    reporter,
	}
}

// Add validates and stores a new source.
//
// The candidate configuration is checked with exactly one probe call; any
// remote failure surfaces as domain.ErrInvalidConfiguration and the source
// is not stored. The probe result is discarded, not cached.
func (s *SourceService) Add(ctx context.Context, source domain.Source) error {
	if source.ID == "" {
		return domain.ErrInvalidInput
	}

	existing, err := s.sourceStore.Get(ctx, source.ID)
	if err == nil && existing != nil {
		return domain.ErrAlreadyExists
	}

	connector, err := s.factory.Create(ctx, source)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	if err := connector.Validate(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, err)
	}

	s.reporter.Infof("Validated %s source %s", source.Type, source.ID)
	return s.sourceStore.Save(ctx, source)
}

// Get retrieves a source by ID.
func (s *SourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	return s.sourceStore.Get(ctx, id)
}

// List returns all configured sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.sourceStore.List(ctx)
}

// Remove deletes a source.
func (s *SourceService) Remove(ctx context.Context, id string) error {
	return s.sourceStore.Delete(ctx, id)
}
