package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nextelligentia/leadops/internal/domain"
)

const leadColumns = `id, first_name, last_name, email, country_code, phone, budget,
	company, region, services, project_details, status, created_at, updated_at`

type LeadRepository struct {
	pool *pgxpool.Pool
}

func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	query := `
		INSERT INTO leads (
			first_name, last_name, email, country_code, phone, budget,
			company, region, services, project_details, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + leadColumns

	row := r.pool.QueryRow(ctx, query,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.CountryCode,
		lead.Phone,
		lead.Budget,
		lead.Company,
		lead.Region,
		lead.Services,
		lead.ProjectDetails,
		lead.Status,
	)

	created, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	return created, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	query := `
		UPDATE leads
		SET    status = $2, updated_at = NOW()
		WHERE  id = $1
		RETURNING ` + leadColumns

	return scanLead(r.pool.QueryRow(ctx, query, id, status))
}

func (r *LeadRepository) Count(ctx context.Context, status domain.LeadStatus) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE $1 = '' OR status = $1`, string(status),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

func scanLead(row pgx.Row) (*domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.CountryCode, &l.Phone, &l.Budget,
		&l.Company, &l.Region, &l.Services, &l.ProjectDetails, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("scan lead: %w", err)
	}
	return &l, nil
}
