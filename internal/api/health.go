package api

import (
	"net/http"

	"github.com/alumnx/mentor-api/internal/store"
	"github.com/go-chi/chi/v5"
)

// HealthHandler serves the service banner, liveness and readiness
// endpoints.
type HealthHandler struct {
	repo    store.Repository
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(repo store.Repository, version string) *HealthHandler {
	return &HealthHandler{repo: repo, version: version}
}

// RegisterRoutes registers the banner, liveness and readiness routes.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
}

// Root returns the service banner.
func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{
		"message": "Unified Project + Agentic AI API",
		"version": h.version,
	})
}

// Health is the liveness probe. It answers as long as the process is
// serving requests; it does not touch the database.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready reports whether the document store is reachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
