package domain

import "errors"

// Validation failures.
var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrPasswordTooShort = errors.New("password too short")
	ErrInvalidRole      = errors.New("invalid role")
	ErrNoProfileFields  = errors.New("no profile fields to update")
	ErrInvalidJob       = errors.New("invalid job")
	ErrEmptyMessage     = errors.New("message has neither text nor image")
	ErrInvalidImage     = errors.New("invalid image payload")
)

// Authentication failures.
var (
	// ErrInvalidCredentials covers both unknown emails and wrong passwords so
	// callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Authorization failures.
var (
	ErrForbidden    = errors.New("access forbidden")
	ErrEmployerOnly = errors.New("employers only")
	ErrOwnJob       = errors.New("cannot apply to own job")
)

// Missing entities.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrJobNotFound   = errors.New("job not found")
	ErrMediaNotFound = errors.New("media not found")
)

// Conflicts with existing state.
var (
	ErrUserExists     = errors.New("user already exists")
	ErrAlreadyApplied = errors.New("already applied")
	ErrJobClosed      = errors.New("job closed")
)
