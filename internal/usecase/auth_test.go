package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/email"
	"github.com/nextelligentia/leadops/internal/infrastructure/memory"
	"github.com/nextelligentia/leadops/internal/password"
	"github.com/nextelligentia/leadops/internal/repository"
	"github.com/nextelligentia/leadops/internal/token"
	"github.com/nextelligentia/leadops/internal/usecase"
)

// ---- fakes ----

type fakeAccountRepo struct {
	findByEmailAndRole func(ctx context.Context, email string, role domain.Role) (*domain.Account, error)
	findByID           func(ctx context.Context, id string) (*domain.Account, error)
}

func (r *fakeAccountRepo) FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.Account, error) {
	return r.findByEmailAndRole(ctx, email, role)
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findByID(ctx, id)
}

func (r *fakeAccountRepo) Upsert(context.Context, *domain.Account) (*domain.Account, error) {
	return nil, errors.New("not implemented")
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []email.Message
	send func(ctx context.Context, msg email.Message) error
}

func (s *fakeEmailSender) Send(ctx context.Context, msg email.Message) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	if s.send == nil {
		return nil
	}
	return s.send(ctx, msg)
}

func (s *fakeEmailSender) messages() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.Message(nil), s.sent...)
}

// ---- helpers ----

const (
	testJWTKey   = "test-jwt-secret-at-least-32-chars!!"
	testPassword = "correct horse battery staple"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testAdmin(t *testing.T) *domain.Account {
	t.Helper()
	hash, err := password.Hash(testPassword)
	if err != nil {
		t.Fatal(err)
	}
	return &domain.Account{ID: "acc-1", Name: "Admin", Email: "admin@example.com", PasswordHash: hash, Role: domain.RoleAdmin}
}

func adminRepo(admin *domain.Account) *fakeAccountRepo {
	return &fakeAccountRepo{
		findByEmailAndRole: func(_ context.Context, email string, role domain.Role) (*domain.Account, error) {
			if email == admin.Email && role == domain.RoleAdmin {
				return admin, nil
			}
			return nil, domain.ErrAccountNotFound
		},
		findByID: func(_ context.Context, id string) (*domain.Account, error) {
			if id == admin.ID {
				return admin, nil
			}
			return nil, domain.ErrAccountNotFound
		},
	}
}

func newAuth(repo *fakeAccountRepo, store repository.OTPStore, sender *fakeEmailSender, c *clock) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(
		repo, store, sender,
		email.Templates{Brand: "Test"},
		token.NewMinter([]byte(testJWTKey), time.Hour),
		discard,
		usecase.WithClock(c.now),
	)
}

func pendingCode(t *testing.T, store repository.OTPStore, accountID string) string {
	t.Helper()
	p, err := store.Get(context.Background(), accountID)
	if err != nil {
		t.Fatalf("no pending code: %v", err)
	}
	return p.Code
}

// ---- Login ----

func TestLogin_UnknownEmail_ReturnsAccountNotFound(t *testing.T) {
	admin := testAdmin(t)
	store := memory.NewOTPStore()
	sender := &fakeEmailSender{}
	uc := newAuth(adminRepo(admin), store, sender, &clock{t: time.Now()})

	_, err := uc.Login(context.Background(), "nobody@example.com", testPassword)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if store.Len() != 0 || len(sender.messages()) != 0 {
		t.Error("no code should be issued for an unknown email")
	}
}

func TestLogin_NonAdminRole_ReturnsAccountNotFound(t *testing.T) {
	user := testAdmin(t)
	user.Role = domain.RoleUser
	repo := &fakeAccountRepo{
		findByEmailAndRole: func(_ context.Context, email string, role domain.Role) (*domain.Account, error) {
			if role != domain.RoleAdmin {
				t.Errorf("queried with role %q", role)
			}
			if email == user.Email && role == user.Role {
				return user, nil
			}
			return nil, domain.ErrAccountNotFound
		},
	}
	uc := newAuth(repo, memory.NewOTPStore(), &fakeEmailSender{}, &clock{t: time.Now()})

	_, err := uc.Login(context.Background(), user.Email, testPassword)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLogin_WrongPassword_ReturnsInvalidCredentials(t *testing.T) {
	admin := testAdmin(t)
	store := memory.NewOTPStore()
	sender := &fakeEmailSender{}
	uc := newAuth(adminRepo(admin), store, sender, &clock{t: time.Now()})

	_, err := uc.Login(context.Background(), admin.Email, "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if store.Len() != 0 || len(sender.messages()) != 0 {
		t.Error("no code should be issued for a wrong password")
	}
}

func TestLogin_EmailsSixDigitCodeToAdmin(t *testing.T) {
	admin := testAdmin(t)
	store := memory.NewOTPStore()
	sender := &fakeEmailSender{}
	uc := newAuth(adminRepo(admin), store, sender, &clock{t: time.Now()})

	got, err := uc.Login(context.Background(), admin.Email, testPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != admin.ID {
		t.Errorf("account id: got %q", got.ID)
	}

	code := pendingCode(t, store, admin.ID)
	if len(code) != 6 || code[0] == '0' {
		t.Errorf("code %q is not a 6-digit number in [100000, 999999]", code)
	}

	msgs := sender.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 email, got %d", len(msgs))
	}
	if msgs[0].To != admin.Email {
		t.Errorf("email sent to %q", msgs[0].To)
	}
	if !strings.Contains(msgs[0].Text, code) {
		t.Error("email body does not contain the pending code")
	}
}

func TestLogin_SendFailure_ReturnsTransportError(t *testing.T) {
	admin := testAdmin(t)
	sender := &fakeEmailSender{send: func(context.Context, email.Message) error {
		return errors.New("smtp: connection refused")
	}}
	uc := newAuth(adminRepo(admin), memory.NewOTPStore(), sender, &clock{t: time.Now()})

	_, err := uc.Login(context.Background(), admin.Email, testPassword)
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestLogin_SecondLoginReplacesCode(t *testing.T) {
	admin := testAdmin(t)
	store := memory.NewOTPStore()
	c := &clock{t: time.Now()}
	uc := newAuth(adminRepo(admin), store, &fakeEmailSender{}, c)

	var codes []string
	for range 5 {
		if _, err := uc.Login(context.Background(), admin.Email, testPassword); err != nil {
			t.Fatal(err)
		}
		codes = append(codes, pendingCode(t, store, admin.ID))
	}
	if store.Len() != 1 {
		t.Fatalf("expected a single pending entry, got %d", store.Len())
	}

	last := codes[len(codes)-1]
	for _, old := range codes[:len(codes)-1] {
		if old == last {
			continue
		}
		if _, err := uc.VerifyTwoFactor(context.Background(), admin.ID, old); !errors.Is(err, domain.ErrCodeMismatch) {
			t.Fatalf("superseded code %q: expected ErrCodeMismatch, got %v", old, err)
		}
	}
	if _, err := uc.VerifyTwoFactor(context.Background(), admin.ID, last); err != nil {
		t.Fatalf("latest code rejected: %v", err)
	}
}

// ---- VerifyTwoFactor ----

func TestVerifyTwoFactor_CorrectCode_MintsTokenAndConsumesCode(t *testing.T) {
	admin := testAdmin(t)
	store := memory.NewOTPStore()
	uc := newAuth(adminRepo(admin), store, &fakeEmailSender{}, &clock{t: time.Now()})

	if _, err := uc.Login(context.Background(), admin.Email, testPassword); err != nil {
		t.Fatal(err)
	}
	code := pendingCode(t, store, admin.ID)

	res, err := uc.VerifyTwoFactor(context.Background(), admin.ID, code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := token.Parse([]byte(testJWTKey), res.Token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != admin.ID || claims.Email != admin.Email || claims.Role != domain.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}

	// single use
	_, err = uc.VerifyTwoFactor(context.Background(), admin.ID, code)
	if !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("replay: expected ErrCodeNotFound, got %v", err)
	}
}

// roundTripStore adds latency to every call, like a networked store would.
type roundTripStore struct {
	*memory.OTPStore
	delay time.Duration
}

func (s roundTripStore) Get(ctx context.Context, accountID string) (domain.PendingCode, error) {
	time.Sleep(s.delay)
	return s.OTPStore.Get(ctx, accountID)
}

func (s roundTripStore) Consume(ctx context.Context, accountID, code string, now time.Time) error {
	time.Sleep(s.delay)
	return s.OTPStore.Consume(ctx, accountID, code, now)
}

func TestVerifyTwoFactor_ConcurrentRequestsMintOneToken(t *testing.T) {
	admin := testAdmin(t)
	store := roundTripStore{OTPStore: memory.NewOTPStore(), delay: 5 * time.Millisecond}
	uc := newAuth(adminRepo(admin), store, &fakeEmailSender{}, &clock{t: time.Now()})

	if _, err := uc.Login(context.Background(), admin.Email, testPassword); err != nil {
		t.Fatal(err)
	}
	code := pendingCode(t, store, admin.ID)

	const requests = 5
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		tokens int
	)
	for range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.VerifyTwoFactor(context.Background(), admin.ID, code)
			switch {
			case err == nil:
				mu.Lock()
				tokens++
				mu.Unlock()
			case errors.Is(err, domain.ErrCodeNotFound):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if tokens != 1 {
		t.Fatalf("one code minted %d tokens, want 1", tokens)
	}
}

func TestVerifyTwoFactor_NoPendingCode(t *testing.T) {
	admin := testAdmin(t)
	uc := newAuth(adminRepo(admin), memory.NewOTPStore(), &fakeEmailSender{}, &clock{t: time.Now()})

	_, err := uc.VerifyTwoFactor(context.Background(), admin.ID, "123456")
	if !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
}

func TestVerifyTwoFactor_WrongCode_KeepsPendingEntry(t *testing.T) {
	admin := testAdmin(t)
	store := memory.NewOTPStore()
	uc := newAuth(adminRepo(admin), store, &fakeEmailSender{}, &clock{t: time.Now()})

	if _, err := uc.Login(context.Background(), admin.Email, testPassword); err != nil {
		t.Fatal(err)
	}
	code := pendingCode(t, store, admin.ID)
	wrong := "100000"
	if code == wrong {
		wrong = "100001"
	}

	if _, err := uc.VerifyTwoFactor(context.Background(), admin.ID, wrong); !errors.Is(err, domain.ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
	if _, err := uc.VerifyTwoFactor(context.Background(), admin.ID, code); err != nil {
		t.Fatalf("correct code after a mismatch should still verify: %v", err)
	}
}

func TestVerifyTwoFactor_ExpiryBoundary(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		wantErr error
	}{
		{"just before expiry", 10*time.Minute - time.Second, nil},
		{"exactly at expiry", 10 * time.Minute, nil},
		{"just after expiry", 10*time.Minute + time.Second, domain.ErrCodeExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			admin := testAdmin(t)
			store := memory.NewOTPStore()
			c := &clock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
			uc := newAuth(adminRepo(admin), store, &fakeEmailSender{}, c)

			if _, err := uc.Login(context.Background(), admin.Email, testPassword); err != nil {
				t.Fatal(err)
			}
			code := pendingCode(t, store, admin.ID)
			c.advance(tc.elapsed)

			_, err := uc.VerifyTwoFactor(context.Background(), admin.ID, code)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if store.Len() != 0 {
				t.Error("entry should be removed on success and on expiry")
			}
			if tc.wantErr != nil {
				if _, err := uc.VerifyTwoFactor(context.Background(), admin.ID, code); !errors.Is(err, domain.ErrCodeNotFound) {
					t.Fatalf("retry after expiry: expected ErrCodeNotFound, got %v", err)
				}
			}
		})
	}
}

func TestVerifyTwoFactor_AccountDeletedAfterLogin(t *testing.T) {
	admin := testAdmin(t)
	store := memory.NewOTPStore()
	repo := adminRepo(admin)
	uc := newAuth(repo, store, &fakeEmailSender{}, &clock{t: time.Now()})

	if _, err := uc.Login(context.Background(), admin.Email, testPassword); err != nil {
		t.Fatal(err)
	}
	code := pendingCode(t, store, admin.ID)

	repo.findByID = func(context.Context, string) (*domain.Account, error) {
		return nil, domain.ErrAccountNotFound
	}
	_, err := uc.VerifyTwoFactor(context.Background(), admin.ID, code)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestVerifyTwoFactor_CodesAreScopedPerAccount(t *testing.T) {
	admin := testAdmin(t)
	store := memory.NewOTPStore()
	uc := newAuth(adminRepo(admin), store, &fakeEmailSender{}, &clock{t: time.Now()})

	if _, err := uc.Login(context.Background(), admin.Email, testPassword); err != nil {
		t.Fatal(err)
	}
	code := pendingCode(t, store, admin.ID)

	if _, err := uc.VerifyTwoFactor(context.Background(), "someone-else", code); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound for another account, got %v", err)
	}
}
