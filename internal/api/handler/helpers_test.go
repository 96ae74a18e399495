package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/talenthub-api/internal/api/middleware"
	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

var errNotImplemented = errors.New("not implemented")

// newContext builds an echo context for a JSON request, optionally carrying
// an authenticated user and path parameters given as name/value pairs.
func newContext(t *testing.T, method, target string, body io.Reader, user *domain.User, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if len(params)%2 != 0 {
		t.Fatalf("params must be name/value pairs")
	}
	var names, values []string
	for i := 0; i < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	if user != nil {
		c.Set(middleware.UserKey, user)
	}
	return c, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.Session, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.Session, error)
	loggedOut  []string
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(_ context.Context, token string) {
	s.loggedOut = append(s.loggedOut, token)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, errNotImplemented
}

type stubJobService struct {
	listFn   func(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error)
	mineFn   func(ctx context.Context, employerID string) ([]*domain.Job, error)
	getFn    func(ctx context.Context, jobID string) (*domain.JobDetail, error)
	createFn func(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error)
	updateFn func(ctx context.Context, in ports.UpdateJobInput) (*domain.Job, error)
	deleteFn func(ctx context.Context, jobID, callerID string) error
	applyFn  func(ctx context.Context, jobID, callerID string) (*domain.Job, error)
}

func (s *stubJobService) List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	return s.listFn(ctx, filter)
}

func (s *stubJobService) ListByEmployer(ctx context.Context, employerID string) ([]*domain.Job, error) {
	return s.mineFn(ctx, employerID)
}

func (s *stubJobService) Get(ctx context.Context, jobID string) (*domain.JobDetail, error) {
	return s.getFn(ctx, jobID)
}

func (s *stubJobService) Create(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	return s.createFn(ctx, in)
}

func (s *stubJobService) Update(ctx context.Context, in ports.UpdateJobInput) (*domain.Job, error) {
	return s.updateFn(ctx, in)
}

func (s *stubJobService) Delete(ctx context.Context, jobID, callerID string) error {
	return s.deleteFn(ctx, jobID, callerID)
}

func (s *stubJobService) Apply(ctx context.Context, jobID, callerID string) (*domain.Job, error) {
	return s.applyFn(ctx, jobID, callerID)
}

type stubMessageService struct {
	conversationFn func(ctx context.Context, callerID, otherID string) ([]*domain.Message, error)
	sendFn         func(ctx context.Context, in ports.SendMessageInput) (*ports.SentMessage, error)
	partnersFn     func(ctx context.Context, callerID string) ([]domain.ChatPartner, error)
}

func (s *stubMessageService) Conversation(ctx context.Context, callerID, otherID string) ([]*domain.Message, error) {
	return s.conversationFn(ctx, callerID, otherID)
}

func (s *stubMessageService) Send(ctx context.Context, in ports.SendMessageInput) (*ports.SentMessage, error) {
	return s.sendFn(ctx, in)
}

func (s *stubMessageService) ChatPartners(ctx context.Context, callerID string) ([]domain.ChatPartner, error) {
	return s.partnersFn(ctx, callerID)
}

type stubProfileService struct {
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error)
	othersFn func(ctx context.Context, callerID string) ([]*domain.User, error)
}

func (s *stubProfileService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubProfileService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, in)
}

func (s *stubProfileService) ListOthers(ctx context.Context, callerID string) ([]*domain.User, error) {
	return s.othersFn(ctx, callerID)
}
