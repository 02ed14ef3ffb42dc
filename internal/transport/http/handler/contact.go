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

type contactUsecaser interface {
	CreateContact(ctx context.Context, input usecase.CreateContactInput) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]*domain.Contact, error)
}

type ContactHandler struct {
	contacts contactUsecaser
	logger   *slog.Logger
}

func NewContactHandler(contacts contactUsecaser, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger.With("component", "contact_handler")}
}

type createContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Subject *string `json:"subject"`
	Message string  `json:"message"`
}

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   *string   `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func toContactResponse(ct *domain.Contact) contactResponse {
	return contactResponse{
		ID:        ct.ID,
		Name:      ct.Name,
		Email:     ct.Email,
		Subject:   ct.Subject,
		Message:   ct.Message,
		CreatedAt: ct.CreatedAt,
	}
}

// POST /api/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	var req createContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errInvalidBody)
		return
	}

	contact, err := h.contacts.CreateContact(c.Request.Context(), usecase.CreateContactInput(req))
	if err != nil {
		writeError(c, h.logger, "create contact", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you for your message! We will get back to you soon.",
		"contact": toContactResponse(contact),
	})
}

// GET /api/contacts
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contacts.ListContacts(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list contacts", err)
		return
	}

	out := make([]contactResponse, 0, len(contacts))
	for _, ct := range contacts {
		out = append(out, toContactResponse(ct))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "contacts": out})
}
