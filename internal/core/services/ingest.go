package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driving"
)

// DefaultWorkers caps how many project units run concurrently when no
// explicit worker count is configured.
const DefaultWorkers = 4

// runHistoryKeep is how many ingest runs are retained per source.
const runHistoryKeep = 100

// Ensure IngestOrchestrator implements the interface.
var _ driving.IngestOrchestrator = (*IngestOrchestrator)(nil)

// IngestOrchestrator coordinates document ingestion for configured sources.
//
// One run enumerates a source's projects once, then processes each project
// as an independent unit on a bounded worker pool. A unit failure is logged
// and isolated; it never cancels sibling units or the run.
type IngestOrchestrator struct {
	sourceStore driven.SourceStore
	factory     driven.ConnectorFactory
	sink        driven.SinkQueue
	history     driven.SchedulerStore
	reporter    driven.Reporter

	workers     int
	unitTimeout time.Duration

	// Status tracking
	mu         sync.RWMutex
	activeRuns map[string]*driving.IngestStatus
}

// NewIngestOrchestrator creates an ingest orchestrator.
// history may be nil to disable run recording. workers <= 0 selects
// DefaultWorkers; unitTimeout <= 0 disables the per-unit deadline.
func NewIngestOrchestrator(
	sourceStore driven.SourceStore,
	factory driven.ConnectorFactory,
	sink driven.SinkQueue,
	history driven.SchedulerStore,
	reporter driven.Reporter,
	workers int,
	unitTimeout time.Duration,
) *IngestOrchestrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &IngestOrchestrator{
		sourceStore: sourceStore,
		factory:     factory,
		sink:        sink,
		history:     history,
		reporter:    reporter,
		workers:     workers,
		unitTimeout: unitTimeout,
		activeRuns:  make(map[string]*driving.IngestStatus),
	}
}

// Run ingests one source.
func (o *IngestOrchestrator) Run(ctx context.Context, sourceID string) error {
	source, err := o.sourceStore.Get(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("get source: %w", err)
	}

	connector, err := o.factory.Create(ctx, *source)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	if !o.startRun(sourceID) {
		return domain.ErrIngestInProgress
	}
	defer o.clearStatus(sourceID)

	startedAt := time.Now()
	o.reporter.Infof("Starting ingestion for source %s", sourceID)

	runErr := o.ingest(ctx, connector)

	docs, unitErrs := o.counts(sourceID)
	o.recordRun(sourceID, startedAt, docs, unitErrs, runErr)

	if runErr != nil {
		o.reporter.Errorf("Ingestion failed for source %s: %v", sourceID, runErr)
		return runErr
	}

	o.reporter.Infof("Ingestion complete: %d documents, %d unit errors", docs, unitErrs)
	return nil
}

// RunAll ingests every configured source.
func (o *IngestOrchestrator) RunAll(ctx context.Context) error {
	sources, err := o.sourceStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	var errs []error
	for _, source := range sources {
		if err := o.Run(ctx, source.ID); err != nil {
			errs = append(errs, fmt.Errorf("ingest %s: %w", source.ID, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Status returns the ingest status for a source.
func (o *IngestOrchestrator) Status(_ context.Context, sourceID string) (*driving.IngestStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if status, ok := o.activeRuns[sourceID]; ok {
		// Return a copy to avoid race conditions
		copied := *status
		return &copied, nil
	}

	// Not running - return idle status
	return &driving.IngestStatus{SourceID: sourceID}, nil
}

// ingest enumerates projects and fans the units out over the worker pool.
// Returns an error only when project enumeration fails; no documents are
// enqueued in that case.
func (o *IngestOrchestrator) ingest(ctx context.Context, connector driven.Connector) error {
	projects, err := connector.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	sem := make(chan struct{}, o.workers)
	var wg sync.WaitGroup

	for _, project := range projects {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(p domain.Project) {
			defer wg.Done()
			defer func() { <-sem }()
			o.ingestProject(ctx, connector, p)
		}(project)
	}

	wg.Wait()
	return nil
}

// ingestProject runs one project unit: fetch, build, enqueue.
// All failures are absorbed here; a unit never affects its siblings.
func (o *IngestOrchestrator) ingestProject(ctx context.Context, connector driven.Connector, project domain.Project) {
	if o.unitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.unitTimeout)
		defer cancel()
	}

	o.reporter.Infof("Fetching to-dos from project %s (%d)", project.Name, project.ID)

	sourceID := connector.SourceID()
	docsCh, errsCh := connector.FetchProject(ctx, project)

	for docsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			o.reporter.Warnf("Project %s unit cancelled: %v", project.Name, ctx.Err())
			o.addErrors(sourceID, 1)
			return

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if record, isRecord := driven.IsRecordError(err); isRecord {
				o.reporter.Warnf("Skipping %s: %v", record.URL, record.Err)
				o.addErrors(sourceID, 1)
				continue
			}
			o.reporter.Errorf("Project %s unit failed: %v", project.Name, err)
			o.addErrors(sourceID, 1)
			return

		case doc, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			if err := o.sink.Enqueue(ctx, doc); err != nil {
				o.reporter.Errorf("Project %s enqueue failed: %v", project.Name, err)
				o.addErrors(sourceID, 1)
				return
			}
			o.addDocuments(sourceID, 1)
		}
	}
}

// recordRun persists the run outcome when a history store is configured.
func (o *IngestOrchestrator) recordRun(sourceID string, startedAt time.Time, docs, unitErrs int, runErr error) {
	if o.history == nil {
		return
	}

	run := &domain.IngestRun{
		ID:         uuid.New().String(),
		SourceID:   sourceID,
		StartedAt:  startedAt,
		EndedAt:    time.Now(),
		Documents:  docs,
		UnitErrors: unitErrs,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	// History recording is best effort; never fails the run.
	ctx := context.Background()
	if err := o.history.RecordRun(ctx, run); err != nil {
		o.reporter.Warnf("Failed to record run for %s: %v", sourceID, err)
		return
	}
	if err := o.history.PruneHistory(ctx, runHistoryKeep); err != nil {
		o.reporter.Warnf("Failed to prune run history: %v", err)
	}
}

// startRun registers an active run, refusing a second concurrent run for
// the same source.
func (o *IngestOrchestrator) startRun(sourceID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status, ok := o.activeRuns[sourceID]; ok && status.Running {
		return false
	}
	o.activeRuns[sourceID] = &driving.IngestStatus{SourceID: sourceID, Running: true}
	return true
}

func (o *IngestOrchestrator) clearStatus(sourceID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.activeRuns, sourceID)
}

func (o *IngestOrchestrator) addDocuments(sourceID string, n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status, ok := o.activeRuns[sourceID]; ok {
		status.Documents += n
	}
}

func (o *IngestOrchestrator) addErrors(sourceID string, n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status, ok := o.activeRuns[sourceID]; ok {
		status.Errors += n
	}
}

func (o *IngestOrchestrator) counts(sourceID string) (docs, unitErrs int) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if status, ok := o.activeRuns[sourceID]; ok {
		return status.Documents, status.Errors
	}
	return 0, 0
}
