package api

import (
	"log/slog"
	"net/http"

	"github.com/alumnx/mentor-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// AgentRegistryHandler handles the AI-agent registry endpoints.
type AgentRegistryHandler struct {
	*Handler
}

// NewAgentRegistryHandler creates a new agent registry handler.
func NewAgentRegistryHandler(base *Handler) *AgentRegistryHandler {
	return &AgentRegistryHandler{Handler: base}
}

// RegisterRoutes registers agent registry routes.
func (h *AgentRegistryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/ai-agent", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/user/{userID}", h.ListForUser)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create registers a new agent for a user.
func (h *AgentRegistryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var agent domain.AIAgent
	if err := decodeJSON(w, r, &agent); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if agent.UserID == "" || agent.Name == "" {
		Error(w, http.StatusBadRequest, "userId and name are required")
		return
	}

	created, err := h.repo.CreateAgent(r.Context(), &agent)
	if err != nil {
		slog.Error("Failed to create agent", "error", err)
		Error(w, http.StatusInternalServerError, "failed to create agent")
		return
	}
	JSON(w, http.StatusCreated, created)
}

// List returns agent entries, optionally filtered by userId query parameter.
func (h *AgentRegistryHandler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.repo.ListAgents(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		slog.Error("Failed to list agents", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list agents")
		return
	}
	JSON(w, http.StatusOK, agents)
}

// ListForUser returns all agent entries for a user.
func (h *AgentRegistryHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	agents, err := h.repo.ListAgents(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to list user agents", "error", err, "user_id", userID)
		Error(w, http.StatusInternalServerError, "failed to list agents")
		return
	}
	JSON(w, http.StatusOK, agents)
}

// Get returns an agent entry by id.
func (h *AgentRegistryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid agent ID")
		return
	}

	agent, err := h.repo.GetAgent(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get agent", "error", err, "agent_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to get agent")
		return
	}
	if agent == nil {
		Error(w, http.StatusNotFound, "agent not found")
		return
	}
	JSON(w, http.StatusOK, agent)
}

// Update applies a partial update to an agent entry.
func (h *AgentRegistryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid agent ID")
		return
	}

	var update domain.AIAgentUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agent, err := h.repo.UpdateAgent(r.Context(), id, &update)
	if err != nil {
		slog.Error("Failed to update agent", "error", err, "agent_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to update agent")
		return
	}
	if agent == nil {
		Error(w, http.StatusNotFound, "agent not found")
		return
	}
	JSON(w, http.StatusOK, agent)
}

// Delete removes an agent entry.
func (h *AgentRegistryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid agent ID")
		return
	}

	deleted, err := h.repo.DeleteAgent(r.Context(), id)
	if err != nil {
		slog.Error("Failed to delete agent", "error", err, "agent_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to delete agent")
		return
	}
	if deleted == 0 {
		Error(w, http.StatusNotFound, "agent not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
