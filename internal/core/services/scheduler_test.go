package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driving"
)

// countingIngest records RunAll invocations.
type countingIngest struct {
	mu   sync.Mutex
	runs int
}

var _ driving.IngestOrchestrator = (*countingIngest)(nil)

func (c *countingIngest) Run(context.Context, string) error { return nil }

func (c *countingIngest) RunAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs++
	return nil
}

func (c *countingIngest) Status(_ context.Context, sourceID string) (*driving.IngestStatus, error) {
	return &driving.IngestStatus{SourceID: sourceID}, nil
}

func (c *countingIngest) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runs
}

func startScheduler(t *testing.T, s *Scheduler) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Start(context.Background())
	}()
	t.Cleanup(func() {
		require.NoError(t, s.Stop())
		<-done
	})
	// Give the initial due-task check a moment to complete.
	time.Sleep(50 * time.Millisecond)
}

func TestSchedulerCreatesTask(t *testing.T) {
	store := newTaskStore()
	ingest := &countingIngest{}
	s := NewScheduler(domain.SchedulerConfig{Enabled: true, Interval: time.Hour}, store, ingest, nopReporter{})

	startScheduler(t, s)

	task, err := store.GetTask(context.Background(), domain.TaskIDIngest)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, time.Hour, task.Interval)
	assert.True(t, task.Enabled)
	assert.False(t, task.NextRun.IsZero())

	// First run is scheduled one interval out, not immediately.
	assert.Equal(t, 0, ingest.count())
}

func TestSchedulerRunsDueTask(t *testing.T) {
	store := newTaskStore()
	ingest := &countingIngest{}

	// Seed a task that is already overdue.
	require.NoError(t, store.SaveTask(context.Background(), &domain.ScheduledTask{
		ID:       domain.TaskIDIngest,
		Name:     "Document Ingestion",
		Interval: time.Hour,
		Enabled:  true,
		NextRun:  time.Now().Add(-time.Minute),
	}))

	s := NewScheduler(domain.SchedulerConfig{Enabled: true, Interval: time.Hour}, store, ingest, nopReporter{})
	startScheduler(t, s)

	require.Eventually(t, func() bool {
		return ingest.count() == 1
	}, time.Second, 10*time.Millisecond)

	task, err := store.GetTask(context.Background(), domain.TaskIDIngest)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.False(t, task.LastRun.IsZero())
	assert.True(t, task.NextRun.After(time.Now()))
}

func TestSchedulerSkipsDisabledTask(t *testing.T) {
	store := newTaskStore()
	ingest := &countingIngest{}

	require.NoError(t, store.SaveTask(context.Background(), &domain.ScheduledTask{
		ID:       domain.TaskIDIngest,
		Name:     "Document Ingestion",
		Interval: time.Hour,
		Enabled:  true,
		NextRun:  time.Now().Add(-time.Minute),
	}))

	s := NewScheduler(domain.SchedulerConfig{Enabled: false, Interval: time.Hour}, store, ingest, nopReporter{})
	startScheduler(t, s)

	assert.Equal(t, 0, ingest.count())
}

func TestSchedulerStopIdempotent(t *testing.T) {
	s := NewScheduler(domain.SchedulerConfig{}, newTaskStore(), &countingIngest{}, nopReporter{})
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
}
