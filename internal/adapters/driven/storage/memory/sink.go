// Package memory provides in-memory storage adapters, used by tests and
// dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driven"
)

// Ensure SinkQueue implements the interface.
var _ driven.SinkQueue = (*SinkQueue)(nil)

// SinkQueue is an in-memory implementation of driven.SinkQueue.
// Documents are kept keyed by (id, source_id), so enqueues are idempotent.
type SinkQueue struct {
	mu    sync.RWMutex
	docs  map[string]domain.Document
	order []string
}

// NewSinkQueue creates a new in-memory sink queue.
func NewSinkQueue() *SinkQueue {
	return &SinkQueue{
		docs: make(map[string]domain.Document),
	}
}

// Enqueue stores a document tree.
func (q *SinkQueue) Enqueue(_ context.Context, doc domain.Document) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := doc.SourceID + "/" + doc.ID
	if _, exists := q.docs[key]; !exists {
		q.order = append(q.order, key)
	}
	q.docs[key] = doc
	return nil
}

// Close releases resources.
func (q *SinkQueue) Close() error {
	return nil
}

// Documents returns the enqueued documents in first-enqueue order.
func (q *SinkQueue) Documents() []domain.Document {
	q.mu.RLock()
	defer q.mu.RUnlock()

	docs := make([]domain.Document, 0, len(q.order))
	for _, key := range q.order {
		docs = append(docs, q.docs[key])
	}
	return docs
}

// Len returns the number of distinct enqueued documents.
func (q *SinkQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.docs)
}
