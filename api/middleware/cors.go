package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/venuehub/venuehub-backend/pkg/config"
)

// CORS allows the configured browser origins. Headers clients need to read
// from JS (rotated token, request id, replay marker) are exposed.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			"X-VH-Token", IdempotencyKeyHeader, RequestIDHeader,
		},
		ExposedHeaders: []string{
			"X-VH-Token", "Content-Disposition", "Location", "Retry-After",
			RequestIDHeader, IdempotencyReplayedHeader,
		},
		AllowCredentials: true,
		MaxAge:           int(cfg.MaxAge.Seconds()),
	})
}
