package repository

import (
	"context"

	"github.com/nextelligentia/leadops/internal/domain"
)

type AccountRepository interface {
	// FindByEmailAndRole matches email and role in the same query so a caller
	// cannot learn whether an account with a different role uses that email.
	// The returned account carries PasswordHash.
	FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Upsert creates the account or replaces name, hash and role for an existing email.
	Upsert(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
