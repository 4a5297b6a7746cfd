// Package jobs defines the background work the API hands off instead of
// running inline: rebuilding a user's per-weekday spending rollups.
package jobs

import (
	"context"
	"time"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed.
	JobStatusFailed JobStatus = "failed"
	// JobStatusRetrying indicates the job failed and is being retried.
	JobStatusRetrying JobStatus = "retrying"
)

// RollupJob asks the worker to rebuild one user's daily spending totals.
type RollupJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// UserID identifies whose rollups to rebuild.
	UserID string `json:"user_id"`

	// Reference is the instant the rollup week is computed from.
	Reference time.Time `json:"reference"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is when the job started processing.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the job completed (success or failure).
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	// RetryCount is the number of times this job has been retried.
	RetryCount int `json:"retry_count"`

	// MaxRetries is the maximum number of retries allowed.
	MaxRetries int `json:"max_retries"`
}

// Publisher defines the interface for publishing jobs to a queue.
// The abstraction keeps the HTTP layer independent of the queue backing
// (in-memory today, Cloud Tasks or Pub/Sub later).
type Publisher interface {
	// PublishRollup publishes a rollup rebuild job.
	PublishRollup(ctx context.Context, job *RollupJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs from the queue.
	// The handler function is called for each job received.
	Start(ctx context.Context, handler Handler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// Handler processes one job. A non-nil error marks the job failed and
// eligible for retry.
type Handler func(ctx context.Context, job *RollupJob) error

// Store tracks job state so clients can poll for completion.
type Store interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *RollupJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*RollupJob, error)

	// ListJobs retrieves jobs with optional filtering.
	ListJobs(ctx context.Context, filter Filter) ([]*RollupJob, error)
}

// Filter defines filtering criteria for listing jobs.
type Filter struct {
	// UserID filters jobs by owner.
	UserID string

	// Status filters jobs by status.
	Status JobStatus

	// Limit limits the number of results.
	Limit int

	// Offset for pagination.
	Offset int
}
