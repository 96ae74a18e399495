package domain

// Access is the outcome of an ownership check on a job.
type Access int

const (
	AccessAllowed Access = iota
	AccessForbidden
	AccessNotFound
)

// AuthorizeJob decides whether userID may mutate job. A nil job means the
// lookup found nothing.
func AuthorizeJob(job *Job, userID string) Access {
	switch {
	case job == nil:
		return AccessNotFound
	case userID == "" || job.EmployerID != userID:
		return AccessForbidden
	default:
		return AccessAllowed
	}
}

// Err maps the access outcome to its domain error, nil when allowed.
func (a Access) Err() error {
	switch a {
	case AccessNotFound:
		return ErrJobNotFound
	case AccessForbidden:
		return ErrForbidden
	default:
		return nil
	}
}
