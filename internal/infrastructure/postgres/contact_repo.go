package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nextelligentia/leadops/internal/domain"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	query := `
		INSERT INTO contacts (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, subject, message, created_at`

	created, err := scanContact(r.pool.QueryRow(ctx, query, c.Name, c.Email, c.Subject, c.Message))
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return created, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]*domain.Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM   contacts
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*domain.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan contact: %w", err)
	}
	return &c, nil
}
