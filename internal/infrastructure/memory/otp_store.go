// Package memory keeps pending one-time codes in process memory. Codes are
// lost on restart; expired entries stay until overwritten or verified.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nextelligentia/leadops/internal/domain"
)

type OTPStore struct {
	mu    sync.Mutex
	codes map[string]domain.PendingCode
}

func NewOTPStore() *OTPStore {
	return &OTPStore{codes: make(map[string]domain.PendingCode)}
}

func (s *OTPStore) Put(_ context.Context, accountID string, code domain.PendingCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[accountID] = code
	return nil
}

func (s *OTPStore) Get(_ context.Context, accountID string) (domain.PendingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[accountID]
	if !ok {
		return domain.PendingCode{}, domain.ErrCodeNotFound
	}
	return code, nil
}

func (s *OTPStore) Delete(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, accountID)
	return nil
}

func (s *OTPStore) Consume(_ context.Context, accountID, code string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.codes[accountID]
	if !ok {
		return domain.ErrCodeNotFound
	}
	err := pending.Match(now, code)
	if errors.Is(err, domain.ErrCodeMismatch) {
		return err
	}
	delete(s.codes, accountID)
	return err
}

// Len reports the number of pending entries, expired ones included.
func (s *OTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}
