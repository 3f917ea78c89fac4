package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driven"
)

// sinkQueue implements driven.SinkQueue on the queue_documents table.
// Each enqueue stores one top-level document with its comment children in a
// single transaction, upserting on (id, source_id) so repeated enqueues of
// the same document are idempotent.
type sinkQueue struct {
	store *Store
}

var _ driven.SinkQueue = (*sinkQueue)(nil)

// Enqueue stores a document tree. Safe for concurrent use.
func (q *sinkQueue) Enqueue(ctx context.Context, doc domain.Document) error {
	tx, err := q.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin enqueue: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now().UTC()

	if err := upsertDocument(ctx, tx, doc, nil, 0, now); err != nil {
		return err
	}

	// Replace the child set wholesale so re-enqueues cannot leave stale
	// comments behind.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM queue_documents WHERE source_id = ? AND parent_id = ?
	`, doc.SourceID, doc.ID); err != nil {
		return fmt.Errorf("clearing children: %w", err)
	}

	for i, child := range doc.Children {
		if err := upsertDocument(ctx, tx, child, &doc.ID, i, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit enqueue: %w", err)
	}
	return nil
}

// Close is a no-op; the shared store owns the connection.
func (q *sinkQueue) Close() error {
	return nil
}

// upsertDocument writes one document row within the transaction.
func upsertDocument(ctx context.Context, tx *sql.Tx, doc domain.Document, parentID *string, position int, now time.Time) error {
	var content sql.NullString
	if doc.Content != nil {
		content = sql.NullString{String: *doc.Content, Valid: true}
	}
	var parent sql.NullString
	if parentID != nil {
		parent = sql.NullString{String: *parentID, Valid: true}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO queue_documents
			(id, source_id, type, title, content, author, author_image_url,
			 location, url, timestamp, parent_id, position, enqueued_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id, source_id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			content = excluded.content,
			author = excluded.author,
			author_image_url = excluded.author_image_url,
			location = excluded.location,
			url = excluded.url,
			timestamp = excluded.timestamp,
			parent_id = excluded.parent_id,
			position = excluded.position,
			enqueued_at = excluded.enqueued_at
	`, doc.ID, doc.SourceID, string(doc.Type), doc.Title, content, doc.Author,
		doc.AuthorImageURL, doc.Location, doc.URL, doc.Timestamp, parent, position, now)

	if err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.ID, err)
	}
	return nil
}
