package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Login(ctx context.Context, email, password string) (*domain.Account, error)
	VerifyTwoFactor(ctx context.Context, accountID, code string) (*usecase.TwoFactorResult, error)
}

type statsProvider interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

type AdminHandler struct {
	auth          authUsecaser
	stats         statsProvider
	uniformErrors bool
	logger        *slog.Logger
}

type AdminOption func(*AdminHandler)

// WithUniformAuthErrors answers an unknown email the same way as a wrong
// password so login cannot be used to probe for admin addresses.
func WithUniformAuthErrors(on bool) AdminOption {
	return func(h *AdminHandler) { h.uniformErrors = on }
}

func NewAdminHandler(auth authUsecaser, stats statsProvider, logger *slog.Logger, opts ...AdminOption) *AdminHandler {
	h := &AdminHandler{
		auth:   auth,
		stats:  stats,
		logger: logger.With("component", "admin_handler"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyRequest struct {
	AdminID string `json:"adminId" binding:"required"`
	OTP     string `json:"otp"     binding:"required"`
}

type adminResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type statsResponse struct {
	TotalLeads          int64 `json:"totalLeads"`
	NewLeads            int64 `json:"newLeads"`
	TotalJobs           int64 `json:"totalJobs"`
	ActiveJobs          int64 `json:"activeJobs"`
	TotalPortfolioItems int64 `json:"totalPortfolioItems"`
	TotalContacts       int64 `json:"totalContacts"`

	// No application entity exists; both stay 0 so dashboard clients keep
	// their response shape.
	TotalJobApplications int64 `json:"totalJobApplications"`
	PendingApplications  int64 `json:"pendingApplications"`
}

func newStatsResponse(s *domain.DashboardStats) statsResponse {
	return statsResponse{
		TotalLeads:          s.TotalLeads,
		NewLeads:            s.NewLeads,
		TotalJobs:           s.TotalJobs,
		ActiveJobs:          s.ActiveJobs,
		TotalPortfolioItems: s.TotalPortfolioItems,
		TotalContacts:       s.TotalContacts,
	}
}

// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errInvalidBody)
		return
	}

	account, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			if h.uniformErrors {
				fail(c, http.StatusBadRequest, errInvalidCredentials)
				return
			}
			fail(c, http.StatusNotFound, errAdminNotFound)
		case errors.Is(err, domain.ErrInvalidCredentials):
			fail(c, http.StatusBadRequest, errInvalidCredentials)
		case errors.Is(err, domain.ErrTransport):
			fail(c, http.StatusInternalServerError, errSendCode)
		default:
			h.logger.ErrorContext(c.Request.Context(), "admin login", "error", err)
			fail(c, http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification code sent to your email",
		"adminId": account.ID,
	})
}

// POST /api/admin/verify-2fa
func (h *AdminHandler) Verify2FA(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errInvalidBody)
		return
	}

	res, err := h.auth.VerifyTwoFactor(c.Request.Context(), req.AdminID, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCodeNotFound),
			errors.Is(err, domain.ErrCodeExpired),
			errors.Is(err, domain.ErrCodeMismatch):
			fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrAccountNotFound):
			fail(c, http.StatusNotFound, errAdminNotFound)
		default:
			h.logger.ErrorContext(c.Request.Context(), "verify 2fa", "error", err)
			fail(c, http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   res.Token,
		"admin": adminResponse{
			ID:    res.Account.ID,
			Name:  res.Account.Name,
			Email: res.Account.Email,
			Role:  res.Account.Role,
		},
	})
}

// GET /api/admin/dashboard/stats
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	s, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "dashboard stats", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": newStatsResponse(s)})
}
