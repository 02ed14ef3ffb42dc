package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/repository"
	"github.com/nextelligentia/leadops/internal/transport/http/handler"
	"github.com/nextelligentia/leadops/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Admin     *handler.AdminHandler
	Leads     *handler.LeadHandler
	Jobs      *handler.JobHandler
	Portfolio *handler.PortfolioHandler
	Contacts  *handler.ContactHandler
}

type RouterConfig struct {
	JWTKey  []byte
	Brand   string
	Version string
}

func NewRouter(logger *slog.Logger, h Handlers, accounts repository.AccountRepository, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	adminOnly := []gin.HandlerFunc{
		middleware.Auth(cfg.JWTKey),
		middleware.EnsureAccount(accounts, logger),
		middleware.RequireRole(domain.RoleAdmin),
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to " + cfg.Brand + " API",
			"status":  "Server is running",
			"version": cfg.Version,
		})
	})

	// /admin is kept for older clients.
	for _, prefix := range []string{"/admin", "/api/admin"} {
		admin := r.Group(prefix)
		admin.POST("/login", h.Admin.Login)
		admin.POST("/verify-2fa", h.Admin.Verify2FA)

		protected := admin.Group("", adminOnly...)
		protected.GET("/dashboard/stats", h.Admin.DashboardStats)
		protected.GET("/jobs", h.Jobs.ListAll)
	}

	public := r.Group("/api")
	public.POST("/leads", h.Leads.Create)
	public.GET("/jobs", h.Jobs.ListActive)
	public.GET("/portfolio", h.Portfolio.List)
	public.GET("/portfolio/:id", h.Portfolio.GetByID)
	public.POST("/contacts", h.Contacts.Create)

	api := r.Group("/api", adminOnly...)
	api.GET("/leads", h.Leads.List)
	api.PATCH("/leads/:id/status", h.Leads.UpdateStatus)
	api.POST("/jobs", h.Jobs.Create)
	api.PATCH("/jobs/:id/status", h.Jobs.UpdateStatus)
	api.DELETE("/jobs/:id", h.Jobs.Delete)
	api.POST("/portfolio", h.Portfolio.Create)
	api.DELETE("/portfolio/:id", h.Portfolio.Delete)
	api.GET("/contacts", h.Contacts.List)

	return r
}
