package repository

import (
	"context"

	"github.com/nextelligentia/leadops/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	List(ctx context.Context) ([]*domain.Contact, error)
	Count(ctx context.Context) (int64, error)
}
