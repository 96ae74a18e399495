package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/talenthub-api/internal/api/metrics"
	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

type JobHandler struct {
	jobs ports.JobService
}

func NewJobHandler(jobs ports.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// listJobsQuery carries the optional listing filters.
type listJobsQuery struct {
	Remote    bool    `query:"remote"`
	Time      string  `query:"time" validate:"omitempty,oneof=full-time part-time"`
	MinBudget float64 `query:"minBudget" validate:"gte=0"`
	Location  string  `query:"location"`
	Skill     string  `query:"skill"`
	Status    string  `query:"status" validate:"omitempty,oneof=open closed"`
}

func (q listJobsQuery) filter() domain.JobFilter {
	return domain.JobFilter{
		RemoteOnly: q.Remote,
		Time:       domain.JobTime(q.Time),
		MinBudget:  q.MinBudget,
		Location:   q.Location,
		Skill:      q.Skill,
		Status:     domain.JobStatus(q.Status),
	}
}

type createJobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      float64  `json:"budget"`
	Status      string   `json:"status" validate:"omitempty,oneof=open closed"`
	Time        string   `json:"time" validate:"omitempty,oneof=full-time part-time"`
	Remote      bool     `json:"remote"`
	Location    string   `json:"location"`
	Skills      []string `json:"skills" validate:"max=50"`
}

type updateJobRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Budget      *float64  `json:"budget"`
	Status      *string   `json:"status" validate:"omitempty,oneof=open closed"`
	Time        *string   `json:"time" validate:"omitempty,oneof=full-time part-time"`
	Remote      *bool     `json:"remote"`
	Location    *string   `json:"location"`
	Skills      *[]string `json:"skills" validate:"omitempty,max=50"`
}

func (r updateJobRequest) patch() domain.JobPatch {
	p := domain.JobPatch{
		Title:       r.Title,
		Description: r.Description,
		Budget:      r.Budget,
		Remote:      r.Remote,
		Location:    r.Location,
		Skills:      r.Skills,
	}
	if r.Status != nil {
		s := domain.JobStatus(*r.Status)
		p.Status = &s
	}
	if r.Time != nil {
		t := domain.JobTime(*r.Time)
		p.Time = &t
	}
	return p
}

// List returns all jobs, optionally filtered.
//
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        remote     query     bool    false  "Only remote jobs"
// @Param        time       query     string  false  "full-time or part-time"
// @Param        minBudget  query     number  false  "Minimum budget"
// @Param        location   query     string  false  "Exact location"
// @Param        skill      query     string  false  "Case-insensitive skill substring"
// @Param        status     query     string  false  "open or closed"
// @Success      200        {array}   domain.Job
// @Failure      400        {object}  messageResponse
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	var q listJobsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query").SetInternal(err)
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	jobs, err := h.jobs.List(c.Request().Context(), q.filter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// ListMine returns the jobs posted by the caller.
//
// @Summary      List own jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {array}   domain.Job
// @Failure      401  {object}  messageResponse
// @Router       /jobs/user [get]
func (h *JobHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	jobs, err := h.jobs.ListByEmployer(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Get returns a job with its employer and applicants resolved.
//
// @Summary      Job detail
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.JobDetail
// @Failure      404  {object}  messageResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	detail, err := h.jobs.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Create posts a new job owned by the caller.
//
// @Summary      Create job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  domain.Job
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.Create(c.Request().Context(), ports.CreateJobInput{
		EmployerID:  user.ID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Status:      req.Status,
		Time:        req.Time,
		Remote:      req.Remote,
		Location:    req.Location,
		Skills:      req.Skills,
	})
	if err != nil {
		return err
	}
	metrics.JobsCreatedTotal.WithLabelValues(string(job.Time)).Inc()
	return c.JSON(http.StatusCreated, job)
}

// Update changes the supplied fields of a job owned by the caller.
//
// @Summary      Update job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Job ID"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  domain.Job
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.Update(c.Request().Context(), ports.UpdateJobInput{
		JobID:    c.Param("id"),
		CallerID: user.ID,
		Patch:    req.patch(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete removes a job owned by the caller.
//
// @Summary      Delete job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.jobs.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Job deleted successfully"})
}

// Apply records the caller as an applicant.
//
// @Summary      Apply to job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      400  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	job, err := h.jobs.Apply(c.Request().Context(), c.Param("id"), user.ID)
	metrics.JobApplicationsTotal.WithLabelValues(applicationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

func applicationResult(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, domain.ErrAlreadyApplied):
		return "duplicate"
	case errors.Is(err, domain.ErrJobClosed):
		return "closed"
	case errors.Is(err, domain.ErrOwnJob):
		return "own_job"
	default:
		return "error"
	}
}
