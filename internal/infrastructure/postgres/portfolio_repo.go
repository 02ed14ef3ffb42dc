package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nextelligentia/leadops/internal/domain"
)

const portfolioColumns = `id, title, category, description, image_url, project_url,
	technologies, created_at, updated_at`

type PortfolioRepository struct {
	pool *pgxpool.Pool
}

func NewPortfolioRepository(pool *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{pool: pool}
}

func (r *PortfolioRepository) Create(ctx context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	query := `
		INSERT INTO portfolio_items (
			title, category, description, image_url, project_url, technologies
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + portfolioColumns

	row := r.pool.QueryRow(ctx, query,
		item.Title,
		item.Category,
		item.Description,
		item.ImageURL,
		item.ProjectURL,
		item.Technologies,
	)

	created, err := scanPortfolioItem(row)
	if err != nil {
		return nil, fmt.Errorf("insert portfolio item: %w", err)
	}
	return created, nil
}

func (r *PortfolioRepository) GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio_items WHERE id = $1`

	return scanPortfolioItem(r.pool.QueryRow(ctx, query, id))
}

func (r *PortfolioRepository) List(ctx context.Context) ([]*domain.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio_items ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.PortfolioItem, 0)
	for rows.Next() {
		p, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM portfolio_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPortfolioItemNotFound
	}
	return nil
}

func (r *PortfolioRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM portfolio_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count portfolio items: %w", err)
	}
	return n, nil
}

func scanPortfolioItem(row pgx.Row) (*domain.PortfolioItem, error) {
	var p domain.PortfolioItem
	err := row.Scan(
		&p.ID, &p.Title, &p.Category, &p.Description, &p.ImageURL, &p.ProjectURL,
		&p.Technologies, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPortfolioItemNotFound
		}
		return nil, fmt.Errorf("scan portfolio item: %w", err)
	}
	return &p, nil
}
