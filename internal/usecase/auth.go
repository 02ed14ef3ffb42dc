package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/email"
	"github.com/nextelligentia/leadops/internal/metrics"
	"github.com/nextelligentia/leadops/internal/password"
	"github.com/nextelligentia/leadops/internal/repository"
)

const defaultOTPTTL = 10 * time.Minute

type tokenMinter interface {
	Mint(account *domain.Account) (string, error)
}

type AuthUsecase struct {
	accounts  repository.AccountRepository
	codes     repository.OTPStore
	email     email.Sender
	templates email.Templates
	minter    tokenMinter
	logger    *slog.Logger
	otpTTL    time.Duration
	now       func() time.Time
}

type AuthOption func(*AuthUsecase)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) AuthOption {
	return func(u *AuthUsecase) { u.now = now }
}

func WithOTPTTL(ttl time.Duration) AuthOption {
	return func(u *AuthUsecase) {
		if ttl > 0 {
			u.otpTTL = ttl
		}
	}
}

func NewAuthUsecase(
	accounts repository.AccountRepository,
	codes repository.OTPStore,
	sender email.Sender,
	templates email.Templates,
	minter tokenMinter,
	logger *slog.Logger,
	opts ...AuthOption,
) *AuthUsecase {
	u := &AuthUsecase{
		accounts:  accounts,
		codes:     codes,
		email:     sender,
		templates: templates,
		minter:    minter,
		logger:    logger.With("component", "auth"),
		otpTTL:    defaultOTPTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// VerifyCredentials returns the admin account owning email if password matches.
func (u *AuthUsecase) VerifyCredentials(ctx context.Context, emailAddr, plain string) (*domain.Account, error) {
	emailAddr = strings.TrimSpace(emailAddr)

	account, err := u.accounts.FindByEmailAndRole(ctx, emailAddr, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			u.logger.InfoContext(ctx, "login rejected: no admin with email", "email", emailAddr)
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	ok, err := password.Compare(plain, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("compare password for %s: %w", account.ID, err)
	}
	if !ok {
		u.logger.InfoContext(ctx, "login rejected: wrong password", "account_id", account.ID)
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

// Login checks the password and, on success, emails a fresh one-time code.
// The returned account identifies the pending second step.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, plain string) (*domain.Account, error) {
	account, err := u.VerifyCredentials(ctx, emailAddr, plain)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return nil, err
	}

	if _, err := u.IssueCode(ctx, account); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("code_failed").Inc()
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("code_sent").Inc()
	return account, nil
}

type TwoFactorResult struct {
	Token   string
	Account *domain.Account
}

// VerifyTwoFactor consumes the pending code and mints a session token.
func (u *AuthUsecase) VerifyTwoFactor(ctx context.Context, accountID, code string) (*TwoFactorResult, error) {
	if err := u.VerifyCode(ctx, accountID, code); err != nil {
		return nil, err
	}

	account, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			u.logger.WarnContext(ctx, "account vanished after code verification", "account_id", accountID)
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	signed, err := u.minter.Mint(account)
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}

	u.logger.InfoContext(ctx, "admin signed in", "account_id", account.ID)
	return &TwoFactorResult{Token: signed, Account: account}, nil
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}
