package api

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/alumnx/mentor-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ProjectHandler handles project CRUD endpoints.
type ProjectHandler struct {
	*Handler
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(base *Handler) *ProjectHandler {
	return &ProjectHandler{Handler: base}
}

// RegisterRoutes registers project routes.
func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Route("/project", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/stats", h.Stats)
	})
}

// Create inserts a new project.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var project domain.Project
	if err := decodeJSON(w, r, &project); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if project.Name == "" || utf8.RuneCountInString(project.Name) > 200 {
		Error(w, http.StatusBadRequest, "name must be between 1 and 200 characters")
		return
	}

	created, err := h.repo.CreateProject(r.Context(), &project)
	if err != nil {
		slog.Error("Failed to create project", "error", err)
		Error(w, http.StatusInternalServerError, "failed to create project")
		return
	}
	JSON(w, http.StatusCreated, created)
}

// List returns all projects, newest first.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.repo.ListProjects(r.Context())
	if err != nil {
		slog.Error("Failed to list projects", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	JSON(w, http.StatusOK, projects)
}

// Get returns a single project by id.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	project, err := h.repo.GetProject(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get project", "error", err, "project_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to get project")
		return
	}
	if project == nil {
		Error(w, http.StatusNotFound, "project not found")
		return
	}
	JSON(w, http.StatusOK, project)
}

// Update applies a partial update to a project.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	var update domain.ProjectUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.repo.UpdateProject(r.Context(), id, &update)
	if err != nil {
		slog.Error("Failed to update project", "error", err, "project_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to update project")
		return
	}
	if project == nil {
		Error(w, http.StatusNotFound, "project not found")
		return
	}
	JSON(w, http.StatusOK, project)
}

// Delete removes a project and its tasks.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	deleted, err := h.repo.DeleteProject(r.Context(), id)
	if err != nil {
		slog.Error("Failed to delete project", "error", err, "project_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to delete project")
		return
	}
	if deleted == 0 {
		Error(w, http.StatusNotFound, "project not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats returns task counts by status for a project.
func (h *ProjectHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	stats, err := h.repo.ProjectStats(r.Context(), id.Hex())
	if err != nil {
		slog.Error("Failed to get project stats", "error", err, "project_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to get project stats")
		return
	}
	JSON(w, http.StatusOK, stats)
}
