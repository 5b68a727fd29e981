package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GoalHandler handles learning-goal endpoints.
type GoalHandler struct {
	*Handler
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(base *Handler) *GoalHandler {
	return &GoalHandler{Handler: base}
}

// RegisterRoutes registers goal routes.
func (h *GoalHandler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.Post("/", h.Upsert)
		r.Get("/", h.List)
		r.Get("/user/{userID}", h.GetForUser)
		r.Get("/{id}", h.Get)
	})
}

type goalRequest struct {
	UserID string   `json:"userId"`
	Goals  []string `json:"goals"`
}

// Upsert creates or replaces the user's goal list. A user has at most
// one goal-set record; resubmitting replaces the list in place.
func (h *GoalHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	goalSet, err := h.repo.UpsertGoalSet(r.Context(), req.UserID, req.Goals)
	if err != nil {
		slog.Error("Failed to upsert goals", "error", err, "user_id", req.UserID)
		Error(w, http.StatusInternalServerError, "failed to save goals")
		return
	}
	JSON(w, http.StatusCreated, goalSet)
}

// List returns goal sets, optionally filtered by userId query parameter.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	sets, err := h.repo.ListGoalSets(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		slog.Error("Failed to list goals", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list goals")
		return
	}
	JSON(w, http.StatusOK, sets)
}

// GetForUser returns the goal set for a user.
func (h *GoalHandler) GetForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	goalSet, err := h.repo.GetUserGoalSet(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to get user goals", "error", err, "user_id", userID)
		Error(w, http.StatusInternalServerError, "failed to get goals")
		return
	}
	if goalSet == nil {
		Error(w, http.StatusNotFound, "goals not found for this user")
		return
	}
	JSON(w, http.StatusOK, goalSet)
}

// Get returns a goal set by document id.
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid goal ID")
		return
	}

	goalSet, err := h.repo.GetGoalSet(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get goal set", "error", err, "goal_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to get goals")
		return
	}
	if goalSet == nil {
		Error(w, http.StatusNotFound, "goals not found")
		return
	}
	JSON(w, http.StatusOK, goalSet)
}
