package ports

import (
	"context"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// CreateJobInput carries the data for a new job. EmployerID is the caller.
type CreateJobInput struct {
	EmployerID  string
	Title       string
	Description string
	Budget      float64
	Status      string
	Time        string
	Remote      bool
	Location    string
	Skills      []string
}

// UpdateJobInput carries a partial update requested by CallerID.
type UpdateJobInput struct {
	JobID    string
	CallerID string
	Patch    domain.JobPatch
}

// JobService defines use-case operations for jobs.
type JobService interface {
	List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*domain.Job, error)
	Get(ctx context.Context, jobID string) (*domain.JobDetail, error)
	Create(ctx context.Context, in CreateJobInput) (*domain.Job, error)
	Update(ctx context.Context, in UpdateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, jobID, callerID string) error
	Apply(ctx context.Context, jobID, callerID string) (*domain.Job, error)
}
