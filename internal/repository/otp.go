package repository

import (
	"context"
	"time"

	"github.com/nextelligentia/leadops/internal/domain"
)

// OTPStore holds at most one pending code per account.
type OTPStore interface {
	// Put replaces any pending code for accountID.
	Put(ctx context.Context, accountID string, code domain.PendingCode) error
	// Get returns domain.ErrCodeNotFound when nothing is pending.
	Get(ctx context.Context, accountID string) (domain.PendingCode, error)
	Delete(ctx context.Context, accountID string) error
	// Consume checks code against the pending entry and removes it in one
	// atomic step. It returns domain.ErrCodeNotFound, domain.ErrCodeExpired
	// (entry removed) or domain.ErrCodeMismatch (entry kept). Of several
	// concurrent calls with the right code, exactly one returns nil.
	Consume(ctx context.Context, accountID, code string, now time.Time) error
}
