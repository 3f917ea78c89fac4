package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driving"
)

// tickInterval is how often the scheduler checks for due tasks.
const tickInterval = time.Minute

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler runs ingestion for all sources on a configured interval.
type Scheduler struct {
	config   domain.SchedulerConfig
	store    driven.SchedulerStore
	ingest   driving.IngestOrchestrator
	reporter driven.Reporter

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	ingest driving.IngestOrchestrator,
	reporter driven.Reporter,
) *Scheduler {
	return &Scheduler{
		config:   config,
		store:    store,
		ingest:   ingest,
		reporter: reporter,
	}
}

// Start begins the scheduler loop. Blocks until Stop is called or the
// context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	if err := s.ensureTask(ctx); err != nil {
		s.reporter.Warnf("Failed to initialise scheduled task: %v", err)
	}

	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	// Wait for running tasks to complete
	s.wg.Wait()
	return nil
}

// ensureTask creates or updates the ingestion task in the store.
func (s *Scheduler) ensureTask(ctx context.Context) error {
	task, err := s.store.GetTask(ctx, domain.TaskIDIngest)
	if err != nil {
		return err
	}

	if task == nil {
		task = &domain.ScheduledTask{
			ID:       domain.TaskIDIngest,
			Name:     "Document Ingestion",
			Interval: s.config.Interval,
			Enabled:  s.config.Enabled,
			NextRun:  time.Now().Add(s.config.Interval),
		}
	} else {
		if task.Interval != s.config.Interval {
			task.Interval = s.config.Interval
			task.NextRun = time.Now().Add(s.config.Interval)
		}
		task.Enabled = s.config.Enabled
	}

	return s.store.SaveTask(ctx, task)
}

// checkAndRunDueTasks finds and executes tasks that are due.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		s.reporter.Warnf("Failed to list scheduled tasks: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		task := &tasks[i]
		if !task.Enabled {
			continue
		}
		if task.NextRun.IsZero() || !task.NextRun.After(now) {
			s.runTask(ctx, task)
		}
	}
}

// runTask executes a single task in the background.
func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		startedAt := time.Now()
		var err error
		switch task.ID {
		case domain.TaskIDIngest:
			err = s.ingest.RunAll(ctx)
		default:
			s.reporter.Warnf("Unknown task ID: %s", task.ID)
			return
		}

		endedAt := time.Now()
		if err != nil {
			task.LastError = err.Error()
			s.reporter.Errorf("Task %s failed: %v", task.ID, err)
		} else {
			task.LastError = ""
			task.LastSuccess = endedAt
		}

		task.LastRun = startedAt
		task.NextRun = endedAt.Add(task.Interval)

		if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
			s.reporter.Warnf("Failed to save task %s: %v", task.ID, saveErr)
		}
	}()
}
