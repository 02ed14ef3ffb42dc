package domain

import (
	"crypto/subtle"
	"errors"
	"time"
)

var (
	ErrCodeNotFound = errors.New("verification code expired or invalid")
	ErrCodeExpired  = errors.New("verification code expired")
	ErrCodeMismatch = errors.New("invalid verification code")

	// ErrTransport marks an email delivery failure the caller must see.
	ErrTransport = errors.New("email transport failure")
)

// PendingCode is the one-time code awaiting verification for a single account.
type PendingCode struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether now is past the code's expiry.
func (p PendingCode) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// Match classifies a submitted code against the pending one: nil on a match,
// ErrCodeExpired past expiry, ErrCodeMismatch otherwise. Expiry wins over a
// wrong code.
func (p PendingCode) Match(now time.Time, code string) error {
	if p.Expired(now) {
		return ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(p.Code), []byte(code)) != 1 {
		return ErrCodeMismatch
	}
	return nil
}
