package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nextelligentia/leadops/internal/domain"
)

const accountColumns = `id, name, email, password_hash, role, created_at, updated_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1) AND role = $2`

	return scanAccount(r.pool.QueryRow(ctx, query, email, role))
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	// callers outside the credential check never need the hash
	a.PasswordHash = ""
	return a, nil
}

func (r *AccountRepository) Upsert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (name, email, password_hash, role)
		VALUES ($1, lower($2), $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET    name          = EXCLUDED.name,
		       password_hash = EXCLUDED.password_hash,
		       role          = EXCLUDED.role,
		       updated_at    = NOW()
		RETURNING ` + accountColumns

	row := r.pool.QueryRow(ctx, query, account.Name, account.Email, account.PasswordHash, account.Role)
	a, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("upsert account: %w", err)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}
