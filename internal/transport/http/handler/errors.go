package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nextelligentia/leadops/internal/domain"
)

const (
	errInternalServer     = "Internal server error"
	errInvalidBody        = "Invalid request body"
	errValidation         = "Validation failed"
	errAdminNotFound      = "Admin not found"
	errInvalidCredentials = "Invalid credentials"
	errSendCode           = "Failed to send verification code"
	errLeadNotFound       = "Lead not found"
	errJobNotFound        = "Job not found"
	errPortfolioNotFound  = "Portfolio item not found"
)

var notFoundMessages = map[error]string{
	domain.ErrLeadNotFound:          errLeadNotFound,
	domain.ErrJobNotFound:           errJobNotFound,
	domain.ErrPortfolioItemNotFound: errPortfolioNotFound,
	domain.ErrAccountNotFound:       errAdminNotFound,
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}

// writeError maps the errors every handler can see. op labels the log line
// for anything that ends up as a 500.
func writeError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errValidation, "errors": verr.Fields})
		return
	}
	for target, msg := range notFoundMessages {
		if errors.Is(err, target) {
			fail(c, http.StatusNotFound, msg)
			return
		}
	}
	logger.ErrorContext(c.Request.Context(), op, "error", err)
	fail(c, http.StatusInternalServerError, errInternalServer)
}

// pathID returns the :id param if it is a UUID. Anything else cannot name a
// stored row, so it is answered with notFound.
func pathID(c *gin.Context, notFound string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusNotFound, notFound)
		return "", false
	}
	return id, true
}
