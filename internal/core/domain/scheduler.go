package domain

import "time"

// TaskIDIngest is the identifier for the periodic ingestion task.
const TaskIDIngest = "ingest"

// ScheduledTask tracks the state of a recurring background task.
type ScheduledTask struct {
	// ID is the task identifier.
	ID string

	// Name is the human-readable task name.
	Name string

	// Interval is how often the task runs.
	Interval time.Duration

	// Enabled controls whether the task is scheduled.
	Enabled bool

	// LastRun is when the task last started.
	LastRun time.Time

	// LastSuccess is when the task last completed without error.
	LastSuccess time.Time

	// LastError holds the most recent failure message, empty on success.
	LastError string

	// NextRun is when the task is next due.
	NextRun time.Time
}

// SchedulerConfig configures the background scheduler.
type SchedulerConfig struct {
	// Enabled controls whether the scheduler runs at all.
	Enabled bool

	// Interval is how often ingestion runs.
	Interval time.Duration
}
