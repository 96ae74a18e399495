package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

type JobService struct {
	jobs   ports.JobRepository
	users  ports.UserRepository
	events ports.EventPublisher
	logger zerolog.Logger
	now    func() time.Time
}

func NewJobService(jobs ports.JobRepository, users ports.UserRepository, events ports.EventPublisher, logger zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, users: users, events: events, logger: logger, now: time.Now}
}

func (s *JobService) List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	return s.jobs.List(ctx, filter)
}

func (s *JobService) ListByEmployer(ctx context.Context, employerID string) ([]*domain.Job, error) {
	return s.jobs.ListByEmployer(ctx, employerID)
}

// Get returns the job with its employer and applicants resolved. Applicants
// whose accounts no longer exist are omitted; order follows application order.
func (s *JobService) Get(ctx context.Context, jobID string) (*domain.JobDetail, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(job.Applicants)+1)
	ids = append(ids, job.EmployerID)
	ids = append(ids, job.Applicants...)
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get job: resolve users: %w", err)
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	detail := &domain.JobDetail{Job: *job, Applicants: make([]domain.UserSummary, 0, len(job.Applicants))}
	if emp, ok := byID[job.EmployerID]; ok {
		summary := emp.Summary()
		detail.Employer = &summary
	}
	for _, id := range job.Applicants {
		if u, ok := byID[id]; ok {
			detail.Applicants = append(detail.Applicants, u.Summary())
		}
	}
	return detail, nil
}

func (s *JobService) Create(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	job := &domain.Job{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Budget:      in.Budget,
		EmployerID:  in.EmployerID,
		Status:      domain.JobStatus(in.Status),
		Time:        domain.JobTime(in.Time),
		Remote:      in.Remote,
		Location:    strings.TrimSpace(in.Location),
		Skills:      cleanSkills(in.Skills),
		CreatedAt:   s.now().UTC(),
	}
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, in.EmployerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create job: load employer: %w", err)
	}
	if owner.Role != domain.RoleEmployer {
		return nil, domain.ErrEmployerOnly
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.logger.Info().Str("job_id", created.ID).Str("employer_id", created.EmployerID).Msg("job created")
	s.publish(ctx, ports.EventJobCreated, ports.JobCreatedEvent{
		JobID:      created.ID,
		EmployerID: created.EmployerID,
		Title:      created.Title,
		OccurredAt: created.CreatedAt,
	})
	return created, nil
}

func (s *JobService) Update(ctx context.Context, in ports.UpdateJobInput) (*domain.Job, error) {
	job, err := s.loadOwned(ctx, in.JobID, in.CallerID)
	if err != nil {
		return nil, err
	}

	merged := in.Patch.Apply(*job)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return s.jobs.Update(ctx, &merged)
}

func (s *JobService) Delete(ctx context.Context, jobID, callerID string) error {
	if _, err := s.loadOwned(ctx, jobID, callerID); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}
	s.logger.Info().Str("job_id", jobID).Msg("job deleted")
	return nil
}

// Apply adds callerID to the job's applicants. The append is a single
// conditional write, so concurrent applications by the same user record it
// once and an application never lands on a closed job.
func (s *JobService) Apply(ctx context.Context, jobID, callerID string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := checkApplicable(job, callerID); err != nil {
		return nil, err
	}

	updated, ok, err := s.jobs.AddApplicant(ctx, jobID, callerID)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	if !ok {
		// Lost a race: reload to report why the write did not match.
		current, err := s.jobs.FindByID(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if err := checkApplicable(current, callerID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("apply: conditional update did not match job %s", jobID)
	}

	s.logger.Info().Str("job_id", jobID).Str("applicant_id", callerID).Msg("application recorded")
	s.publish(ctx, ports.EventJobApplied, ports.JobAppliedEvent{
		JobID:       updated.ID,
		EmployerID:  updated.EmployerID,
		ApplicantID: callerID,
		OccurredAt:  s.now().UTC(),
	})
	return updated, nil
}

func checkApplicable(job *domain.Job, userID string) error {
	switch {
	case job.EmployerID == userID:
		return domain.ErrOwnJob
	case job.HasApplicant(userID):
		return domain.ErrAlreadyApplied
	case job.Status != domain.JobOpen:
		return domain.ErrJobClosed
	}
	return nil
}

// loadOwned fetches the job and verifies callerID is its employer.
func (s *JobService) loadOwned(ctx context.Context, jobID, callerID string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil && !errors.Is(err, domain.ErrJobNotFound) {
		return nil, err
	}
	if err := domain.AuthorizeJob(job, callerID).Err(); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) publish(ctx context.Context, key string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, key, payload); err != nil {
		s.logger.Warn().Err(err).Str("routing_key", key).Msg("failed to publish event")
	}
}
