package repository

import (
	"context"

	"github.com/nextelligentia/leadops/internal/domain"
)

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error) // empty status = all
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status domain.JobStatus) (int64, error)
}
