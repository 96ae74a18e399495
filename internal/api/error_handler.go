package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

type errorResponse struct {
	Message string `json:"message"`
}

// domainError maps a sentinel to its HTTP rendering. An empty message means
// the wrapped error text is shown as is.
type domainError struct {
	target  error
	status  int
	message string
}

// First match wins.
var domainErrors = []domainError{
	{domain.ErrMissingFields, http.StatusBadRequest, "Please fill in all fields"},
	{domain.ErrPasswordTooShort, http.StatusBadRequest, "Password should be at least 6 characters long"},
	{domain.ErrInvalidRole, http.StatusBadRequest, "Role must be one of: freelancer employer"},
	{domain.ErrNoProfileFields, http.StatusBadRequest, "No valid fields to update"},
	{domain.ErrInvalidJob, http.StatusBadRequest, ""},
	{domain.ErrEmptyMessage, http.StatusBadRequest, "Message must contain text or an image"},
	{domain.ErrInvalidImage, http.StatusBadRequest, "Invalid image payload"},
	{domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
	{domain.ErrUserExists, http.StatusBadRequest, "User already exists"},
	{domain.ErrAlreadyApplied, http.StatusBadRequest, "You have already applied to this job"},
	{domain.ErrJobClosed, http.StatusBadRequest, "This job is no longer accepting applications"},

	{domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized - Invalid Token"},

	{domain.ErrEmployerOnly, http.StatusForbidden, "Access denied - Employers only"},
	{domain.ErrOwnJob, http.StatusForbidden, "You cannot apply to your own job"},
	{domain.ErrForbidden, http.StatusForbidden, "You are not authorized to modify this job"},

	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrJobNotFound, http.StatusNotFound, "Job not found"},
	{domain.ErrMediaNotFound, http.StatusNotFound, "Media not found"},
}

// NewHTTPErrorHandler renders every error as {"message": ...}. Domain
// sentinels get their mapped status; anything unknown is logged and
// reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err)
		switch {
		case status == http.StatusInternalServerError && message == "":
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
			message = "Internal server error"
		case status >= http.StatusInternalServerError:
			log.Warn().Err(err).Str("path", c.Path()).Int("status", status).Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, errorResponse{Message: message})
	}
}

// classify resolves err to a status and client-facing message. A 500 with an
// empty message marks an error nothing recognised.
func classify(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}
	for _, de := range domainErrors {
		if !errors.Is(err, de.target) {
			continue
		}
		if de.message == "" {
			return de.status, err.Error()
		}
		return de.status, de.message
	}
	return http.StatusInternalServerError, ""
}
