// Package password hashes and verifies account passwords. New hashes use
// argon2id; bcrypt hashes written by earlier deployments still verify.
package password

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnknownHashFormat = errors.New("unknown password hash format")

func Hash(plain string) (string, error) {
	h, err := argon2id.CreateHash(plain, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return h, nil
}

// Compare reports whether plain matches hash. A non-nil error means the
// stored hash itself is unusable, not that the password is wrong.
func Compare(plain, hash string) (bool, error) {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		ok, err := argon2id.ComparePasswordAndHash(plain, hash)
		if err != nil {
			return false, fmt.Errorf("compare argon2id: %w", err)
		}
		return ok, nil
	case isBcrypt(hash):
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("compare bcrypt: %w", err)
		}
		return true, nil
	default:
		return false, ErrUnknownHashFormat
	}
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}
