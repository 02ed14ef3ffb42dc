// Package token mints and parses the HS256 bearer tokens handed to admins
// after two-factor login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nextelligentia/leadops/internal/domain"
)

const DefaultTTL = 24 * time.Hour

var ErrInvalid = errors.New("token is invalid or expired")

type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type Minter struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewMinter(key []byte, ttl time.Duration) *Minter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Minter{key: key, ttl: ttl, now: time.Now}
}

func (m *Minter) Mint(account *domain.Account) (string, error) {
	now := m.now()
	claims := Claims{
		Email: account.Email,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry. Any failure collapses to ErrInvalid.
func Parse(key []byte, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalid
	}
	if claims.Subject == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
