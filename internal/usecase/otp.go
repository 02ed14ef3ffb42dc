package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/metrics"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// IssueCode stores a new 6-digit code for account, replacing any pending
// one, and emails it. The send is awaited: without it the user has no code.
func (u *AuthUsecase) IssueCode(ctx context.Context, account *domain.Account) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	pending := domain.PendingCode{Code: code, ExpiresAt: u.now().Add(u.otpTTL)}
	if err := u.codes.Put(ctx, account.ID, pending); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}

	msg, err := u.templates.LoginCode(account.Email, code, u.otpTTL)
	if err != nil {
		return "", fmt.Errorf("render code email: %w", err)
	}
	if err := u.email.Send(ctx, msg); err != nil {
		u.logger.ErrorContext(ctx, "send login code", "account_id", account.ID, "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	u.logger.InfoContext(ctx, "login code sent", "account_id", account.ID, "expires_at", pending.ExpiresAt)
	return code, nil
}

// VerifyCode checks code against the pending entry for accountID. Success and
// expiry both consume the entry; a mismatch leaves it in place.
func (u *AuthUsecase) VerifyCode(ctx context.Context, accountID, code string) error {
	err := u.verifyCode(ctx, accountID, code)
	metrics.OTPVerificationsTotal.WithLabelValues(codeOutcome(err)).Inc()
	return err
}

func (u *AuthUsecase) verifyCode(ctx context.Context, accountID, code string) error {
	err := u.codes.Consume(ctx, accountID, code, u.now())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrCodeNotFound),
		errors.Is(err, domain.ErrCodeExpired),
		errors.Is(err, domain.ErrCodeMismatch):
		return err
	default:
		return fmt.Errorf("consume code: %w", err)
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}

func codeOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrCodeNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrCodeExpired):
		return "expired"
	case errors.Is(err, domain.ErrCodeMismatch):
		return "mismatch"
	default:
		return "error"
	}
}
