package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/ports/driven"
)

// nopReporter discards all log output.
type nopReporter struct{}

func (nopReporter) Debugf(string, ...any) {}
func (nopReporter) Infof(string, ...any)  {}
func (nopReporter) Warnf(string, ...any)  {}
func (nopReporter) Errorf(string, ...any) {}

// projectDocs is the scripted output of one project unit: documents to
// stream plus errors to interleave after them.
type projectDocs struct {
	docs []domain.Document
	errs []error
}

// mockConnector is a scripted connector for orchestrator tests.
type mockConnector struct {
	sourceID    string
	projects    []domain.Project
	listErr     error
	validateErr error

	// units is keyed by project ID.
	units map[int64]projectDocs

	mu     sync.Mutex
	closed bool
}

var _ driven.Connector = (*mockConnector)(nil)

func (m *mockConnector) Type() string     { return "mock" }
func (m *mockConnector) SourceID() string { return m.sourceID }

func (m *mockConnector) Validate(context.Context) error {
	return m.validateErr
}

func (m *mockConnector) ListProjects(context.Context) ([]domain.Project, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.projects, nil
}

func (m *mockConnector) FetchProject(_ context.Context, project domain.Project) (<-chan domain.Document, <-chan error) {
	docs := make(chan domain.Document)
	errs := make(chan error, 1)

	unit := m.units[project.ID]
	go func() {
		defer close(docs)
		defer close(errs)
		for _, doc := range unit.docs {
			docs <- doc
		}
		for _, err := range unit.errs {
			errs <- err
		}
	}()
	return docs, errs
}

func (m *mockConnector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// recordingHistory captures run records in memory.
type recordingHistory struct {
	mu     sync.Mutex
	runs   []domain.IngestRun
	pruned int
}

var _ driven.SchedulerStore = (*recordingHistory)(nil)

func (h *recordingHistory) GetTask(context.Context, string) (*domain.ScheduledTask, error) {
	return nil, nil
}

func (h *recordingHistory) SaveTask(context.Context, *domain.ScheduledTask) error {
	return nil
}

func (h *recordingHistory) ListTasks(context.Context) ([]domain.ScheduledTask, error) {
	return nil, nil
}

func (h *recordingHistory) RecordRun(_ context.Context, run *domain.IngestRun) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append(h.runs, *run)
	return nil
}

func (h *recordingHistory) PruneHistory(context.Context, int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pruned++
	return nil
}

func (h *recordingHistory) lastRun() *domain.IngestRun {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.runs) == 0 {
		return nil
	}
	run := h.runs[len(h.runs)-1]
	return &run
}

// taskStore is a minimal in-memory SchedulerStore for scheduler tests.
type taskStore struct {
	mu    sync.Mutex
	tasks map[string]domain.ScheduledTask
}

var _ driven.SchedulerStore = (*taskStore)(nil)

func newTaskStore() *taskStore {
	return &taskStore{tasks: make(map[string]domain.ScheduledTask)}
}

func (s *taskStore) GetTask(_ context.Context, id string) (*domain.ScheduledTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (s *taskStore) SaveTask(_ context.Context, task *domain.ScheduledTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = *task
	return nil
}

func (s *taskStore) ListTasks(context.Context) ([]domain.ScheduledTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]domain.ScheduledTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *taskStore) RecordRun(context.Context, *domain.IngestRun) error { return nil }
func (s *taskStore) PruneHistory(context.Context, int) error            { return nil }
