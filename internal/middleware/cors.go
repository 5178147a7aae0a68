// Package middleware provides reusable HTTP middleware for the rail booking API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsPreflightMaxAge is how long, in seconds, a browser may cache a preflight.
const corsPreflightMaxAge = 600

// NewCORSHandler returns a middleware that applies CORS headers for the given
// origins. Each entry must be a full origin (scheme + host, no trailing slash).
// Content-Disposition is exposed so a browser front end can name the CSV
// booking export; X-Request-Id lets it quote a request in a support ticket.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
		MaxAge:         corsPreflightMaxAge,
	})
	return c.Handler
}
