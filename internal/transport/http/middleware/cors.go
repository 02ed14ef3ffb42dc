package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS wraps next with a CORS handler. An empty allowed list reflects any
// origin; credentials are always allowed.
func CORS(allowed []string, next http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(allowed) == 0 {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	}
	return cors.Handler(opts)(next)
}
