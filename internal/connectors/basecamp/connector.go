package basecamp

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector fetches documents from a Basecamp account.
type Connector struct {
	sourceID string
	client   *Client
	mu       sync.Mutex
	closed   bool
}

// New creates a new Basecamp connector.
func New(sourceID string, cfg *Config) *Connector {
	return &Connector{
		sourceID: sourceID,
		client:   NewClient(cfg),
	}
}

// NewWithClient creates a connector around an existing client.
// Useful for tests.
func NewWithClient(sourceID string, client *Client) *Connector {
	return &Connector{sourceID: sourceID, client: client}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "basecamp"
}

// SourceID returns the source identifier.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Validate checks the configured credentials with a single project
// listing. The probe result is discarded; success has no side effects.
func (c *Connector) Validate(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrConnectorClosed
	}
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if _, err := c.client.ListProjects(ctx); err != nil {
		return err
	}
	return nil
}

// ListProjects enumerates the account's projects.
func (c *Connector) ListProjects(ctx context.Context) ([]domain.Project, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, domain.ErrConnectorClosed
	}
	c.mu.Unlock()

	return c.client.ListProjects(ctx)
}

// FetchProject streams one project's built documents.
//
// Pagination or detail-fetch failures abort the unit with a plain error
// on the error channel. A to-do that cannot be built (missing fields,
// bad timestamp) is reported as a *driven.RecordError and the stream
// continues with the remaining to-dos.
func (c *Connector) FetchProject(ctx context.Context, project domain.Project) (<-chan domain.Document, <-chan error) {
	docs := make(chan domain.Document)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			errs <- domain.ErrConnectorClosed
			return
		}
		c.mu.Unlock()

		todos, err := c.client.ListTodos(ctx, project.ID)
		if err != nil {
			errs <- fmt.Errorf("project %d: %w", project.ID, err)
			return
		}

		for _, todo := range todos {
			doc, err := BuildDocument(todo, project.Name, c.sourceID)
			if err != nil {
				select {
				case <-ctx.Done():
					return
				case errs <- &driven.RecordError{URL: todo.AppURL, Err: err}:
				}
				continue
			}

			select {
			case <-ctx.Done():
				return
			case docs <- doc:
			}
		}
	}()

	return docs, errs
}

// Close releases resources.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Build is the driven.ConnectorBuilder for Basecamp sources.
func Build(source domain.Source) (driven.Connector, error) {
	cfg, err := ParseConfig(source)
	if err != nil {
		return nil, err
	}
	return New(source.ID, cfg), nil
}
