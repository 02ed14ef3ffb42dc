package password_test

import (
	"errors"
	"testing"

	"github.com/nextelligentia/leadops/internal/password"
	"golang.org/x/crypto/bcrypt"
)

func TestHashThenCompare(t *testing.T) {
	h, err := password.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := password.Compare("correct horse", h)
	if err != nil || !ok {
		t.Errorf("Compare(correct) = %v, %v; want true, nil", ok, err)
	}

	ok, err = password.Compare("wrong horse", h)
	if err != nil || ok {
		t.Errorf("Compare(wrong) = %v, %v; want false, nil", ok, err)
	}
}

func TestCompare_Bcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	ok, err := password.Compare("legacy-pass", string(raw))
	if err != nil || !ok {
		t.Errorf("Compare(correct) = %v, %v; want true, nil", ok, err)
	}

	ok, err = password.Compare("nope", string(raw))
	if err != nil || ok {
		t.Errorf("Compare(wrong) = %v, %v; want false, nil", ok, err)
	}
}

func TestCompare_UnknownFormat(t *testing.T) {
	_, err := password.Compare("x", "plaintext-in-db")
	if !errors.Is(err, password.ErrUnknownHashFormat) {
		t.Errorf("want ErrUnknownHashFormat, got %v", err)
	}
}
