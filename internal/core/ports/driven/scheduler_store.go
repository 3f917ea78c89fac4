package driven

import (
	"context"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
)

// SchedulerStore persists background task state and run history.
type SchedulerStore interface {
	// GetTask retrieves a task by ID. Returns (nil, nil) if absent.
	GetTask(ctx context.Context, id string) (*domain.ScheduledTask, error)

	// SaveTask stores or updates a task.
	SaveTask(ctx context.Context, task *domain.ScheduledTask) error

	// ListTasks returns all tasks.
	ListTasks(ctx context.Context) ([]domain.ScheduledTask, error)

	// RecordRun appends an ingest run to the history.
	RecordRun(ctx context.Context, run *domain.IngestRun) error

	// PruneHistory keeps only the most recent keep runs per source.
	PruneHistory(ctx context.Context, keep int) error
}
