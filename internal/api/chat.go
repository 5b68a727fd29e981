package api

import (
	"log/slog"
	"net/http"

	"github.com/alumnx/mentor-api/internal/domain"
	"github.com/alumnx/mentor-api/internal/mentor"
	"github.com/go-chi/chi/v5"
)

// ChatHandler handles chat history and the agent chat endpoint.
type ChatHandler struct {
	*Handler
	mentor *mentor.Service
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(base *Handler, mentorSvc *mentor.Service) *ChatHandler {
	return &ChatHandler{Handler: base, mentor: mentorSvc}
}

// RegisterRoutes registers chat routes.
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Route("/chat", func(r chi.Router) {
		r.Post("/", h.Post)
		r.Post("/agent", h.Agent)
		r.Get("/{userID}", h.History)
	})
}

// Post stores a raw chat record. The timestamp is server-assigned.
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	var msg domain.ChatMessage
	if err := decodeJSON(w, r, &msg); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg.UserID == "" || msg.Message == "" {
		Error(w, http.StatusBadRequest, "userId and message are required")
		return
	}
	if msg.UserType == "" {
		msg.UserType = domain.UserTypeUser
	}

	created, err := h.repo.InsertChatMessage(r.Context(), &msg)
	if err != nil {
		slog.Error("Failed to store chat message", "error", err, "user_id", msg.UserID)
		Error(w, http.StatusInternalServerError, "failed to store chat message")
		return
	}
	JSON(w, http.StatusCreated, created)
}

// History returns a user's chat history in ascending timestamp order.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	messages, err := h.repo.ChatHistory(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to get chat history", "error", err, "user_id", userID)
		Error(w, http.StatusInternalServerError, "failed to get chat history")
		return
	}
	JSON(w, http.StatusOK, messages)
}

// Agent routes a chat message through the mentor pipeline and returns
// the persisted agent reply. Model failures degrade inside the
// pipeline; only storage failures surface as server errors here.
func (h *ChatHandler) Agent(w http.ResponseWriter, r *http.Request) {
	var req mentor.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Message == "" {
		Error(w, http.StatusBadRequest, "userId and message are required")
		return
	}

	reply, err := h.mentor.Respond(r.Context(), req)
	if err != nil {
		slog.Error("Mentor pipeline failed", "error", err, "user_id", req.UserID)
		Error(w, http.StatusInternalServerError, "failed to process chat message")
		return
	}
	JSON(w, http.StatusCreated, reply)
}
