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

type leadUsecaser interface {
	CreateLead(ctx context.Context, input usecase.CreateLeadInput) (*usecase.CreatedLead, error)
	ListLeads(ctx context.Context) ([]*domain.Lead, error)
	UpdateLeadStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error)
}

type LeadHandler struct {
	leads  leadUsecaser
	logger *slog.Logger
}

func NewLeadHandler(leads leadUsecaser, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{leads: leads, logger: logger.With("component", "lead_handler")}
}

type createLeadRequest struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	CountryCode    string   `json:"countryCode"`
	Phone          string   `json:"phone"`
	Budget         string   `json:"budget"`
	Company        *string  `json:"company"`
	Region         string   `json:"region"`
	Services       []string `json:"services"`
	ProjectDetails string   `json:"projectDetails"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type leadResponse struct {
	ID             string            `json:"id"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	Email          string            `json:"email"`
	CountryCode    string            `json:"countryCode"`
	Phone          string            `json:"phone"`
	Budget         string            `json:"budget"`
	Company        *string           `json:"company,omitempty"`
	Region         string            `json:"region"`
	Services       []string          `json:"services"`
	ProjectDetails string            `json:"projectDetails"`
	Status         domain.LeadStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func toLeadResponse(l *domain.Lead) leadResponse {
	return leadResponse{
		ID:             l.ID,
		FirstName:      l.FirstName,
		LastName:       l.LastName,
		Email:          l.Email,
		CountryCode:    l.CountryCode,
		Phone:          l.Phone,
		Budget:         l.Budget,
		Company:        l.Company,
		Region:         l.Region,
		Services:       l.Services,
		ProjectDetails: l.ProjectDetails,
		Status:         l.Status,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// POST /api/leads
// Responds as soon as the lead is stored; emails go out in the background.
func (h *LeadHandler) Create(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errInvalidBody)
		return
	}

	created, err := h.leads.CreateLead(c.Request.Context(), usecase.CreateLeadInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		CountryCode:    req.CountryCode,
		Phone:          req.Phone,
		Budget:         req.Budget,
		Company:        req.Company,
		Region:         req.Region,
		Services:       req.Services,
		ProjectDetails: req.ProjectDetails,
	})
	if err != nil {
		writeError(c, h.logger, "create lead", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you for your interest! Our team will contact you soon.",
		"lead":    toLeadResponse(created.Lead),
	})
}

// GET /api/leads
func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.leads.ListLeads(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list leads", err)
		return
	}

	out := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadResponse(l))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "leads": out})
}

// PATCH /api/leads/:id/status
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errInvalidBody)
		return
	}
	if !domain.LeadStatus(req.Status).Valid() {
		fail(c, http.StatusBadRequest, "Invalid status value")
		return
	}
	id, ok := pathID(c, errLeadNotFound)
	if !ok {
		return
	}

	lead, err := h.leads.UpdateLeadStatus(c.Request.Context(), id, domain.LeadStatus(req.Status))
	if err != nil {
		writeError(c, h.logger, "update lead status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "lead": toLeadResponse(lead)})
}
