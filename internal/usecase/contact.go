package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/repository"
)

type ContactUsecase struct {
	repo repository.ContactRepository
}

func NewContactUsecase(repo repository.ContactRepository) *ContactUsecase {
	return &ContactUsecase{repo: repo}
}

type CreateContactInput struct {
	Name    string  `validate:"required"`
	Email   string  `validate:"required,email"`
	Subject *string `validate:"omitempty,max=200"`
	Message string  `validate:"required,max=5000"`
}

var contactMessages = fieldMessages{
	"name":        "Please provide your name",
	"email":       "Please provide your email",
	"email.email": "Please provide a valid email address",
	"subject":     "Subject must be at most 200 characters",
	"message":     "Please provide a message",
	"message.max": "Message must be at most 5000 characters",
}

func (u *ContactUsecase) CreateContact(ctx context.Context, input CreateContactInput) (*domain.Contact, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Subject = optional(input.Subject)
	input.Message = strings.TrimSpace(input.Message)

	if err := validateInput(input, contactMessages); err != nil {
		return nil, err
	}

	contact, err := u.repo.Create(ctx, &domain.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (u *ContactUsecase) ListContacts(ctx context.Context) ([]*domain.Contact, error) {
	contacts, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}
