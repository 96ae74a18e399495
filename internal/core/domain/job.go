package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// JobStatus is the hiring state of a job.
type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)

// JobTime is the employment time-type of a job.
type JobTime string

const (
	FullTime JobTime = "full-time"
	PartTime JobTime = "part-time"
)

// Job is an employer-owned posting with its applicant list.
type Job struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	EmployerID  string    `json:"employer"`
	Applicants  []string  `json:"applicants"`
	Status      JobStatus `json:"status"`
	Time        JobTime   `json:"time"`
	Remote      bool      `json:"remote"`
	Location    string    `json:"location,omitempty"`
	Skills      []string  `json:"skills"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ApplyDefaults fills the fields the store would otherwise default.
func (j *Job) ApplyDefaults() {
	if j.Status == "" {
		j.Status = JobOpen
	}
	if j.Time == "" {
		j.Time = FullTime
	}
	if j.Applicants == nil {
		j.Applicants = []string{}
	}
	if j.Skills == nil {
		j.Skills = []string{}
	}
}

// Validate enforces the field constraints of a persisted job.
func (j *Job) Validate() error {
	switch {
	case strings.TrimSpace(j.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidJob)
	case strings.TrimSpace(j.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidJob)
	case j.Budget <= 0:
		return fmt.Errorf("%w: budget must be greater than 0", ErrInvalidJob)
	case j.EmployerID == "":
		return fmt.Errorf("%w: employer is required", ErrInvalidJob)
	case j.Status != JobOpen && j.Status != JobClosed:
		return fmt.Errorf("%w: status must be one of: open closed", ErrInvalidJob)
	case j.Time != FullTime && j.Time != PartTime:
		return fmt.Errorf("%w: time must be one of: full-time part-time", ErrInvalidJob)
	}
	return nil
}

// HasApplicant reports whether userID already applied.
func (j *Job) HasApplicant(userID string) bool {
	return slices.Contains(j.Applicants, userID)
}

// JobPatch carries a partial job update. Nil fields are left untouched.
type JobPatch struct {
	Title       *string
	Description *string
	Budget      *float64
	Status      *JobStatus
	Time        *JobTime
	Remote      *bool
	Location    *string
	Skills      *[]string
}

// Apply returns a copy of j with the patch merged in.
func (p JobPatch) Apply(j Job) Job {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Budget != nil {
		j.Budget = *p.Budget
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.Time != nil {
		j.Time = *p.Time
	}
	if p.Remote != nil {
		j.Remote = *p.Remote
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Skills != nil {
		j.Skills = slices.Clone(*p.Skills)
	}
	return j
}

// JobFilter narrows the public job listing. Zero values disable a criterion.
type JobFilter struct {
	RemoteOnly bool
	Time       JobTime
	MinBudget  float64
	Location   string
	Skill      string
	Status     JobStatus
}

// Matches reports whether j passes every enabled criterion.
func (f JobFilter) Matches(j *Job) bool {
	if f.RemoteOnly && !j.Remote {
		return false
	}
	if f.Time != "" && j.Time != f.Time {
		return false
	}
	if f.MinBudget > 0 && j.Budget < f.MinBudget {
		return false
	}
	if f.Location != "" && j.Location != f.Location {
		return false
	}
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if f.Skill != "" {
		needle := strings.ToLower(f.Skill)
		return slices.ContainsFunc(j.Skills, func(s string) bool {
			return strings.Contains(strings.ToLower(s), needle)
		})
	}
	return true
}

// JobDetail is a job with its employer and applicants resolved to summaries.
type JobDetail struct {
	Job
	Employer   *UserSummary  `json:"employerProfile,omitempty"`
	Applicants []UserSummary `json:"applicants"`
}
