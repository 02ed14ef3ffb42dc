package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextelligentia/leadops/internal/domain"
)

type accountFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
}

// EnsureAccount runs after Auth. It rejects tokens whose account no longer
// exists and refreshes the role from storage, so a demoted admin loses
// access before the token expires.
func EnsureAccount(repo accountFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		account, err := repo.FindByID(ctx, c.GetString(KeyAccountID))
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				abort(c, http.StatusUnauthorized, errUnauthorized)
				return
			}
			logger.ErrorContext(ctx, "ensure account", "error", err)
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		c.Set(KeyRole, string(account.Role))
		c.Next()
	}
}
