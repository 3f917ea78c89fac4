package driven

import (
	"context"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
)

// SinkQueue accepts normalised documents for downstream indexing.
// The queue's internals are opaque to the ingestion pipeline.
//
// Enqueue must be safe for concurrent use from multiple project units and
// idempotent on (document.ID, document.SourceID). One call carries a
// top-level document together with its full child-comment tree; the caller
// retains no reference after handoff.
type SinkQueue interface {
	Enqueue(ctx context.Context, doc domain.Document) error
	Close() error
}
