package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/reqctx"
	"github.com/nextelligentia/leadops/internal/token"
)

const (
	errUnauthorized = "Not authorized, please log in"
	errForbidden    = "You do not have permission to perform this action"

	// KeyAccountID and KeyRole are the gin context keys set by Auth.
	KeyAccountID = "accountID"
	KeyRole      = "role"
)

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": msg})
}

// Auth validates a Bearer JWT and sets the account id and role in the gin context.
func Auth(jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abort(c, http.StatusUnauthorized, errUnauthorized)
			return
		}

		claims, err := token.Parse(jwtKey, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abort(c, http.StatusUnauthorized, errUnauthorized)
			return
		}

		c.Set(KeyAccountID, claims.Subject)
		c.Set(KeyRole, string(claims.Role))
		c.Request = c.Request.WithContext(reqctx.WithAccountID(c.Request.Context(), claims.Subject))
		c.Next()
	}
}

// RequireRole runs after EnsureAccount and rejects accounts without role.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if domain.Role(c.GetString(KeyRole)) != role {
			abort(c, http.StatusForbidden, errForbidden)
			return
		}
		c.Next()
	}
}
