package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/usecase"
)

type portfolioUsecaser interface {
	CreateItem(ctx context.Context, input usecase.CreatePortfolioItemInput) (*domain.PortfolioItem, error)
	GetItem(ctx context.Context, id string) (*domain.PortfolioItem, error)
	ListItems(ctx context.Context) ([]*domain.PortfolioItem, error)
	DeleteItem(ctx context.Context, id string) error
}

type PortfolioHandler struct {
	portfolio portfolioUsecaser
	logger    *slog.Logger
}

func NewPortfolioHandler(portfolio portfolioUsecaser, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio, logger: logger.With("component", "portfolio_handler")}
}

type createPortfolioItemRequest struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	ImageURL     *string  `json:"imageUrl"`
	ProjectURL   *string  `json:"projectUrl"`
	Technologies []string `json:"technologies"`
}

type portfolioItemResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	ProjectURL   *string   `json:"projectUrl,omitempty"`
	Technologies []string  `json:"technologies"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toPortfolioItemResponse(p *domain.PortfolioItem) portfolioItemResponse {
	return portfolioItemResponse{
		ID:           p.ID,
		Title:        p.Title,
		Category:     p.Category,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		ProjectURL:   p.ProjectURL,
		Technologies: p.Technologies,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// POST /api/portfolio
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req createPortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errInvalidBody)
		return
	}

	item, err := h.portfolio.CreateItem(c.Request.Context(), usecase.CreatePortfolioItemInput(req))
	if err != nil {
		writeError(c, h.logger, "create portfolio item", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "item": toPortfolioItemResponse(item)})
}

// GET /api/portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	items, err := h.portfolio.ListItems(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list portfolio items", err)
		return
	}

	out := make([]portfolioItemResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPortfolioItemResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": out})
}

// GET /api/portfolio/:id
func (h *PortfolioHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, errPortfolioNotFound)
	if !ok {
		return
	}

	item, err := h.portfolio.GetItem(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "get portfolio item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": toPortfolioItemResponse(item)})
}

// DELETE /api/portfolio/:id
func (h *PortfolioHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, errPortfolioNotFound)
	if !ok {
		return
	}

	if err := h.portfolio.DeleteItem(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, "delete portfolio item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Portfolio item deleted"})
}
