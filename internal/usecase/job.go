package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/repository"
)

type JobUsecase struct {
	repo repository.JobRepository
}

func NewJobUsecase(repo repository.JobRepository) *JobUsecase {
	return &JobUsecase{repo: repo}
}

type CreateJobInput struct {
	Title          string   `validate:"required,max=200"`
	Department     string   `validate:"required"`
	Location       string   `validate:"required"`
	EmploymentType string   `validate:"required,oneof=full-time part-time contract internship"`
	Description    string   `validate:"required"`
	Requirements   []string `validate:"dive,required"`
}

var jobMessages = fieldMessages{
	"title":                "Please provide a job title",
	"title.max":            "Job title must be at most 200 characters",
	"department":           "Please provide a department",
	"location":             "Please provide a location",
	"employmentType":       "Please provide an employment type",
	"employmentType.oneof": "Employment type must be one of full-time, part-time, contract, internship",
	"description":          "Please provide a job description",
	"requirements":         "Requirements must not contain empty entries",
}

func (u *JobUsecase) CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Department = strings.TrimSpace(input.Department)
	input.Location = strings.TrimSpace(input.Location)
	input.EmploymentType = strings.TrimSpace(input.EmploymentType)
	input.Description = strings.TrimSpace(input.Description)
	input.Requirements = trimAll(input.Requirements)
	if input.Requirements == nil {
		input.Requirements = []string{}
	}

	if err := validateInput(input, jobMessages); err != nil {
		return nil, err
	}

	job, err := u.repo.Create(ctx, &domain.Job{
		Title:          input.Title,
		Department:     input.Department,
		Location:       input.Location,
		EmploymentType: domain.EmploymentType(input.EmploymentType),
		Description:    input.Description,
		Requirements:   input.Requirements,
		Status:         domain.JobStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// ListJobs returns postings with the given status; an empty status lists all.
func (u *JobUsecase) ListJobs(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error) {
	jobs, err := u.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (u *JobUsecase) UpdateJobStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "Invalid status value")
	}
	job, err := u.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("update job status: %w", err)
	}
	return job, nil
}

func (u *JobUsecase) DeleteJob(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return domain.ErrJobNotFound
		}
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
