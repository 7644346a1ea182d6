package store

import (
	"context"

	"github.com/sells-group/prebill-link/internal/model"
)

// JobFilter specifies criteria for listing jobs.
type JobFilter struct {
	Status model.JobStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for processing jobs.
type Store interface {
	CreateJob(ctx context.Context, pdfName, xlsxName string) (*model.Job, error)
	CompleteJob(ctx context.Context, jobID string, outcome model.JobOutcome) error
	FailJob(ctx context.Context, jobID string, cause error) error
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
