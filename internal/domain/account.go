package domain

import (
	"errors"
	"time"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // never serialized; only loaded for credential checks
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
