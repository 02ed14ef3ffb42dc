package repository

import (
	"context"

	"github.com/nextelligentia/leadops/internal/domain"
)

type PortfolioRepository interface {
	Create(ctx context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error)
	GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error)
	List(ctx context.Context) ([]*domain.PortfolioItem, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
