package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driven"
)

// schedulerStore implements driven.SchedulerStore.
type schedulerStore struct {
	store *Store
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

// GetTask retrieves a task by ID. Returns (nil, nil) if absent.
func (s *schedulerStore) GetTask(ctx context.Context, id string) (*domain.ScheduledTask, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, interval_seconds, enabled, last_run, last_success, last_error, next_run
		FROM scheduled_tasks WHERE id = ?
	`, id)

	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// SaveTask stores or updates a task.
func (s *schedulerStore) SaveTask(ctx context.Context, task *domain.ScheduledTask) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO scheduled_tasks
			(id, name, interval_seconds, enabled, last_run, last_success, last_error, next_run)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			interval_seconds = excluded.interval_seconds,
			enabled = excluded.enabled,
			last_run = excluded.last_run,
			last_success = excluded.last_success,
			last_error = excluded.last_error,
			next_run = excluded.next_run
	`, task.ID, task.Name, int64(task.Interval/time.Second), task.Enabled,
		nullTime(task.LastRun), nullTime(task.LastSuccess), task.LastError, nullTime(task.NextRun))

	if err != nil {
		return fmt.Errorf("saving task: %w", err)
	}
	return nil
}

// ListTasks returns all tasks.
func (s *schedulerStore) ListTasks(ctx context.Context) ([]domain.ScheduledTask, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, interval_seconds, enabled, last_run, last_success, last_error, next_run
		FROM scheduled_tasks
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.ScheduledTask //nolint:prealloc // size unknown from query
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// RecordRun appends an ingest run to the history.
func (s *schedulerStore) RecordRun(ctx context.Context, run *domain.IngestRun) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, source_id, started_at, ended_at, documents, unit_errors, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SourceID, run.StartedAt, run.EndedAt, run.Documents, run.UnitErrors, run.Error)

	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// PruneHistory keeps only the most recent keep runs per source.
func (s *schedulerStore) PruneHistory(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM ingest_runs WHERE id NOT IN (
			SELECT id FROM ingest_runs AS recent
			WHERE recent.source_id = ingest_runs.source_id
			ORDER BY recent.started_at DESC
			LIMIT ?
		)
	`, keep)

	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}

// scanTask reads one task row via the given scan function.
func scanTask(scan func(dest ...any) error) (*domain.ScheduledTask, error) {
	var task domain.ScheduledTask
	var intervalSeconds int64
	var lastRun, lastSuccess, nextRun sql.NullTime
	if err := scan(&task.ID, &task.Name, &intervalSeconds, &task.Enabled,
		&lastRun, &lastSuccess, &task.LastError, &nextRun); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	task.Interval = time.Duration(intervalSeconds) * time.Second
	if lastRun.Valid {
		task.LastRun = lastRun.Time
	}
	if lastSuccess.Valid {
		task.LastSuccess = lastSuccess.Time
	}
	if nextRun.Valid {
		task.NextRun = nextRun.Time
	}
	return &task, nil
}

// nullTime converts a zero time to NULL.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
