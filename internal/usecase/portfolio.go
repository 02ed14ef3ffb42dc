package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/repository"
)

type PortfolioUsecase struct {
	repo repository.PortfolioRepository
}

func NewPortfolioUsecase(repo repository.PortfolioRepository) *PortfolioUsecase {
	return &PortfolioUsecase{repo: repo}
}

type CreatePortfolioItemInput struct {
	Title        string   `validate:"required,max=200"`
	Category     string   `validate:"required"`
	Description  string   `validate:"required"`
	ImageURL     *string  `validate:"omitempty,url"`
	ProjectURL   *string  `validate:"omitempty,url"`
	Technologies []string `validate:"dive,required"`
}

var portfolioMessages = fieldMessages{
	"title":        "Please provide a title",
	"title.max":    "Title must be at most 200 characters",
	"category":     "Please provide a category",
	"description":  "Please provide a description",
	"imageURL":     "Image URL must be a valid URL",
	"projectURL":   "Project URL must be a valid URL",
	"technologies": "Technologies must not contain empty entries",
}

func (u *PortfolioUsecase) CreateItem(ctx context.Context, input CreatePortfolioItemInput) (*domain.PortfolioItem, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	input.Description = strings.TrimSpace(input.Description)
	input.ImageURL = optional(input.ImageURL)
	input.ProjectURL = optional(input.ProjectURL)
	input.Technologies = trimAll(input.Technologies)
	if input.Technologies == nil {
		input.Technologies = []string{}
	}

	if err := validateInput(input, portfolioMessages); err != nil {
		return nil, err
	}

	item, err := u.repo.Create(ctx, &domain.PortfolioItem{
		Title:        input.Title,
		Category:     input.Category,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		ProjectURL:   input.ProjectURL,
		Technologies: input.Technologies,
	})
	if err != nil {
		return nil, fmt.Errorf("create portfolio item: %w", err)
	}
	return item, nil
}

func (u *PortfolioUsecase) GetItem(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	item, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioItemNotFound) {
			return nil, domain.ErrPortfolioItemNotFound
		}
		return nil, fmt.Errorf("get portfolio item: %w", err)
	}
	return item, nil
}

func (u *PortfolioUsecase) ListItems(ctx context.Context) ([]*domain.PortfolioItem, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}
	return items, nil
}

func (u *PortfolioUsecase) DeleteItem(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPortfolioItemNotFound) {
			return domain.ErrPortfolioItemNotFound
		}
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	return nil
}
