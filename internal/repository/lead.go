package repository

import (
	"context"

	"github.com/nextelligentia/leadops/internal/domain"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	// List returns every lead, newest first.
	List(ctx context.Context) ([]*domain.Lead, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error)
	Count(ctx context.Context, status domain.LeadStatus) (int64, error) // empty status = all
}
