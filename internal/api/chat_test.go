package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alumnx/mentor-api/internal/domain"
	"github.com/alumnx/mentor-api/internal/mentor"
	"github.com/go-chi/chi/v5"
)

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newChatRouter(repo *fakeRepo, completer mentor.Completer) chi.Router {
	r := chi.NewRouter()
	h := NewChatHandler(NewHandler(repo), mentor.NewService(repo, completer))
	h.RegisterRoutes(r)
	return r
}

func TestChatAgentReturnsPersistedReply(t *testing.T) {
	repo := newFakeRepo()
	repo.goalSets["u1"] = &domain.GoalSet{UserID: "u1", Goals: []string{"Learn X"}}
	repo.activeTask = &domain.Task{Title: "Ship Y", Status: domain.TaskStatusInProgress, AssignedTo: "u1"}
	router := newChatRouter(repo, &fakeCompleter{reply: "unused"})

	body := `{"userId": "u1", "userType": "user", "message": "hi"}`
	req := httptest.NewRequest(http.MethodPost, "/chat/agent", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var reply domain.ChatMessage
	if err := json.NewDecoder(rr.Body).Decode(&reply); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if reply.Message != "How is your task 'Ship Y' going?" {
		t.Errorf("unexpected reply text %q", reply.Message)
	}
	if reply.UserType != domain.UserTypeAgent {
		t.Errorf("expected agent record, got userType %q", reply.UserType)
	}
	if reply.ID.IsZero() {
		t.Error("expected a store-assigned id on the reply")
	}
	if len(repo.messages) != 2 {
		t.Errorf("expected 2 persisted chat records, got %d", len(repo.messages))
	}
}

func TestChatAgentSucceedsWhenModelFails(t *testing.T) {
	repo := newFakeRepo()
	repo.goalSets["u3"] = &domain.GoalSet{UserID: "u3", Goals: []string{"Learn X"}}
	router := newChatRouter(repo, &fakeCompleter{err: context.DeadlineExceeded})

	body := `{"userId": "u3", "message": "hello"}`
	req := httptest.NewRequest(http.MethodPost, "/chat/agent", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("model failure must not surface as a server error, got %d", rr.Code)
	}

	var reply domain.ChatMessage
	if err := json.NewDecoder(rr.Body).Decode(&reply); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(reply.Message, "I apologize") {
		t.Errorf("expected apology fallback, got %q", reply.Message)
	}
}

func TestChatAgentValidatesRequest(t *testing.T) {
	router := newChatRouter(newFakeRepo(), &fakeCompleter{reply: "x"})

	for _, body := range []string{
		`{"message": "no user"}`,
		`{"userId": "u1"}`,
		`{not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/chat/agent", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rr.Code)
		}
	}
}

func TestChatHistoryOrdering(t *testing.T) {
	repo := newFakeRepo()
	repo.goalSets["u1"] = &domain.GoalSet{UserID: "u1", Goals: []string{"Learn X"}}
	router := newChatRouter(repo, &fakeCompleter{reply: "sure"})

	post := httptest.NewRequest(http.MethodPost, "/chat/agent", strings.NewReader(`{"userId": "u1", "message": "hello"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, post)
	if rr.Code != http.StatusCreated {
		t.Fatalf("agent chat failed: %d", rr.Code)
	}

	get := httptest.NewRequest(http.MethodGet, "/chat/u1", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, get)
	if rr.Code != http.StatusOK {
		t.Fatalf("history failed: %d", rr.Code)
	}

	var history []domain.ChatMessage
	if err := json.NewDecoder(rr.Body).Decode(&history); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history))
	}
	if history[0].UserType != domain.UserTypeUser || history[1].UserType != domain.UserTypeAgent {
		t.Errorf("expected user message then agent reply, got %q then %q", history[0].UserType, history[1].UserType)
	}
	if history[1].Timestamp.Before(history[0].Timestamp) {
		t.Error("agent reply sorts before the inbound message")
	}
}

func TestChatPostStoresRecord(t *testing.T) {
	repo := newFakeRepo()
	router := newChatRouter(repo, nil)

	body := `{"userId": "u9", "message": "raw note"}`
	req := httptest.NewRequest(http.MethodPost, "/chat/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}

	var msg domain.ChatMessage
	if err := json.NewDecoder(rr.Body).Decode(&msg); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if msg.UserType != domain.UserTypeUser {
		t.Errorf("expected default userType %q, got %q", domain.UserTypeUser, msg.UserType)
	}
	if msg.Timestamp.IsZero() {
		t.Error("expected server-assigned timestamp")
	}
}
