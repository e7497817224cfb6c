package transport

import (
	"context"
	"net/http"

	"inventory-api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// HealthChecker reports the state of a backing resource
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// HealthHandler exposes the service health
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health answers 200 when the database is up and 503 otherwise
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.checker.Health(r.Context())

	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}

	middleware.RespondWithJSON(w, status, stats)
}
