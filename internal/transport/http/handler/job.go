package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/usecase"
)

type jobUsecaser interface {
	CreateJob(ctx context.Context, input usecase.CreateJobInput) (*domain.Job, error)
	ListJobs(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error)
	UpdateJobStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

type JobHandler struct {
	jobs   jobUsecaser
	logger *slog.Logger
}

func NewJobHandler(jobs jobUsecaser, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger.With("component", "job_handler")}
}

type createJobRequest struct {
	Title          string   `json:"title"`
	Department     string   `json:"department"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employmentType"`
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements"`
}

type jobResponse struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Department     string                `json:"department"`
	Location       string                `json:"location"`
	EmploymentType domain.EmploymentType `json:"employmentType"`
	Description    string                `json:"description"`
	Requirements   []string              `json:"requirements"`
	Status         domain.JobStatus      `json:"status"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:             j.ID,
		Title:          j.Title,
		Department:     j.Department,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Description:    j.Description,
		Requirements:   j.Requirements,
		Status:         j.Status,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

// POST /api/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errInvalidBody)
		return
	}

	job, err := h.jobs.CreateJob(c.Request.Context(), usecase.CreateJobInput(req))
	if err != nil {
		writeError(c, h.logger, "create job", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "job": toJobResponse(job)})
}

// ListActive serves the public careers page.
// GET /api/jobs
func (h *JobHandler) ListActive(c *gin.Context) {
	h.list(c, domain.JobStatusActive)
}

// ListAll includes closed postings.
// GET /api/admin/jobs
func (h *JobHandler) ListAll(c *gin.Context) {
	h.list(c, "")
}

func (h *JobHandler) list(c *gin.Context, status domain.JobStatus) {
	jobs, err := h.jobs.ListJobs(c.Request.Context(), status)
	if err != nil {
		writeError(c, h.logger, "list jobs", err)
		return
	}

	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "jobs": out})
}

// PATCH /api/jobs/:id/status
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errInvalidBody)
		return
	}
	id, ok := pathID(c, errJobNotFound)
	if !ok {
		return
	}

	job, err := h.jobs.UpdateJobStatus(c.Request.Context(), id, domain.JobStatus(req.Status))
	if err != nil {
		writeError(c, h.logger, "update job status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "job": toJobResponse(job)})
}

// DELETE /api/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, errJobNotFound)
	if !ok {
		return
	}

	if err := h.jobs.DeleteJob(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, "delete job", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Job deleted"})
}
