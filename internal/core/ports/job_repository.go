package ports

import (
	"context"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns the jobs matching filter; a zero filter returns all jobs.
	List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*domain.Job, error)
	// Update overwrites the mutable fields of job, matched by ID and employer.
	Update(ctx context.Context, job *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	// AddApplicant appends userID in a single conditional write that only
	// matches while the job is open and userID is absent from its applicants.
	// It reports whether the write matched; on false the job is nil.
	AddApplicant(ctx context.Context, jobID, userID string) (*domain.Job, bool, error)
}
