package api

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/alumnx/mentor-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskHandler handles task CRUD endpoints.
type TaskHandler struct {
	*Handler
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(base *Handler) *TaskHandler {
	return &TaskHandler{Handler: base}
}

// RegisterRoutes registers task routes.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/project-tasks", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/user/{userID}", h.ListForUser)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create inserts a new task. The referenced project id must be a valid
// document identifier.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var task domain.Task
	if err := decodeJSON(w, r, &task); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if task.Title == "" || utf8.RuneCountInString(task.Title) > 200 {
		Error(w, http.StatusBadRequest, "title must be between 1 and 200 characters")
		return
	}
	if _, err := primitive.ObjectIDFromHex(task.ProjectID); err != nil {
		Error(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	created, err := h.repo.CreateTask(r.Context(), &task)
	if err != nil {
		slog.Error("Failed to create task", "error", err)
		Error(w, http.StatusInternalServerError, "failed to create task")
		return
	}
	JSON(w, http.StatusCreated, created)
}

// List returns tasks, optionally filtered by project_id query parameter.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.repo.ListTasks(r.Context(), r.URL.Query().Get("project_id"))
	if err != nil {
		slog.Error("Failed to list tasks", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	JSON(w, http.StatusOK, tasks)
}

// ListForUser returns all tasks assigned to a user.
func (h *TaskHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	tasks, err := h.repo.ListUserTasks(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to list user tasks", "error", err, "user_id", userID)
		Error(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	JSON(w, http.StatusOK, tasks)
}

// Get returns a single task by id.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	task, err := h.repo.GetTask(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get task", "error", err, "task_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if task == nil {
		Error(w, http.StatusNotFound, "task not found")
		return
	}
	JSON(w, http.StatusOK, task)
}

// Update applies a partial update to a task.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	var update domain.TaskUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.repo.UpdateTask(r.Context(), id, &update)
	if err != nil {
		slog.Error("Failed to update task", "error", err, "task_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	if task == nil {
		Error(w, http.StatusNotFound, "task not found")
		return
	}
	JSON(w, http.StatusOK, task)
}

// Delete removes a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	deleted, err := h.repo.DeleteTask(r.Context(), id)
	if err != nil {
		slog.Error("Failed to delete task", "error", err, "task_id", id.Hex())
		Error(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	if deleted == 0 {
		Error(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
