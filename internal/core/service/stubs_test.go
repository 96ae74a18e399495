package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	seq    int
	idsErr error
}

func newStubUserRepo(seed ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range seed {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Skills = slices.Clone(u.Skills)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	if r.idsErr != nil {
		return nil, r.idsErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	seen := make(map[string]bool)
	for _, id := range ids {
		if u, ok := r.users[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListExcept(_ context.Context, id string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.User{}
	for _, u := range r.users {
		if u.ID != id {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Skills != nil {
		u.Skills = slices.Clone(*patch.Skills)
	}
	if patch.Image != nil {
		u.Image = *patch.Image
	}
	return cloneUser(u), nil
}

// ---------------------------------------------------------------------------
// Jobs
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
	seq  int
	// beforeAdd runs inside AddApplicant before the conditional check.
	beforeAdd func(job *domain.Job)
}

func newStubJobRepo(seed ...*domain.Job) *stubJobRepo {
	r := &stubJobRepo{jobs: make(map[string]*domain.Job)}
	for _, j := range seed {
		r.jobs[j.ID] = cloneJob(j)
	}
	return r
}

func cloneJob(j *domain.Job) *domain.Job {
	c := *j
	c.Applicants = slices.Clone(j.Applicants)
	c.Skills = slices.Clone(j.Skills)
	return &c
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := cloneJob(job)
	c.ID = fmt.Sprintf("job-%d", r.seq)
	r.jobs[c.ID] = c
	return cloneJob(c), nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) List(_ context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Job{}
	for _, j := range r.jobs {
		if filter.Matches(j) {
			out = append(out, cloneJob(j))
		}
	}
	return out, nil
}

func (r *stubJobRepo) ListByEmployer(_ context.Context, employerID string) ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Job{}
	for _, j := range r.jobs {
		if j.EmployerID == employerID {
			out = append(out, cloneJob(j))
		}
	}
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return nil, domain.ErrJobNotFound
	}
	r.jobs[job.ID] = cloneJob(job)
	return cloneJob(job), nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *stubJobRepo) AddApplicant(_ context.Context, jobID, userID string) (*domain.Job, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, false, nil
	}
	if r.beforeAdd != nil {
		r.beforeAdd(j)
	}
	if j.Status != domain.JobOpen || j.HasApplicant(userID) {
		return nil, false, nil
	}
	j.Applicants = append(j.Applicants, userID)
	return cloneJob(j), true, nil
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type stubMessageRepo struct {
	mu        sync.Mutex
	messages  []*domain.Message
	createErr error
}

func (r *stubMessageRepo) Create(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *msg
	c.ID = fmt.Sprintf("msg-%d", len(r.messages)+1)
	r.messages = append(r.messages, &c)
	out := c
	return &out, nil
}

func (r *stubMessageRepo) Conversation(_ context.Context, a, b string) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Message{}
	for _, m := range r.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) LatestPerPartner(_ context.Context, userID string) ([]domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	latest := make(map[string]domain.Message)
	var order []string
	for _, m := range r.messages {
		if m.SenderID != userID && m.ReceiverID != userID {
			continue
		}
		partner := m.Counterpart(userID)
		prev, ok := latest[partner]
		if !ok {
			order = append(order, partner)
		}
		if !ok || m.CreatedAt.After(prev.CreatedAt) {
			latest[partner] = *m
		}
	}
	out := make([]domain.Conversation, 0, len(order))
	for _, p := range order {
		out = append(out, domain.Conversation{PartnerID: p, LastMessage: latest[p]})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

type stubRelay struct {
	mu     sync.Mutex
	online map[string]bool
	pushed []pushedEvent
}

type pushedEvent struct {
	userID string
	event  domain.Event
}

func newStubRelay(online ...string) *stubRelay {
	r := &stubRelay{online: make(map[string]bool)}
	for _, id := range online {
		r.online[id] = true
	}
	return r
}

func (r *stubRelay) Register(userID string, _ ports.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.online[userID] = true
}

func (r *stubRelay) Unregister(userID string, _ ports.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.online, userID)
}

func (r *stubRelay) Push(userID string, event domain.Event) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.online[userID] {
		return false
	}
	r.pushed = append(r.pushed, pushedEvent{userID: userID, event: event})
	return true
}

func (r *stubRelay) Online() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.online))
	for id := range r.online {
		out = append(out, id)
	}
	return out
}

type publishedEvent struct {
	key     string
	payload any
}

type stubPublisher struct {
	mu        sync.Mutex
	err       error
	published []publishedEvent
}

func (p *stubPublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedEvent{key: key, payload: payload})
	return p.err
}

func (p *stubPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.published))
	for i, e := range p.published {
		out[i] = e.key
	}
	return out
}

type stubUploader struct {
	err      error
	payloads []string
}

func (u *stubUploader) Upload(_ context.Context, payload string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.payloads = append(u.payloads, payload)
	return fmt.Sprintf("/api/media/%d", len(u.payloads)), nil
}

type stubRevocations struct {
	revoked  map[string]time.Duration
	checkErr error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Duration)}
}

func (s *stubRevocations) Revoke(_ context.Context, id string, ttl time.Duration) error {
	s.revoked[id] = ttl
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	_, ok := s.revoked[id]
	return ok, nil
}
