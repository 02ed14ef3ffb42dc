package domain

import (
	"errors"
	"time"
)

var ErrPortfolioItemNotFound = errors.New("portfolio item not found")

type PortfolioItem struct {
	ID           string
	Title        string
	Category     string
	Description  string
	ImageURL     *string
	ProjectURL   *string
	Technologies []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
