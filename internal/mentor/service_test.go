package mentor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alumnx/mentor-api/internal/domain"
	"github.com/alumnx/mentor-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeRepo implements the subset of store.Repository the mentor
// pipeline touches, keeping chat records in memory with strictly
// increasing timestamps.
type fakeRepo struct {
	store.Repository

	mu         sync.Mutex
	goalSet    *domain.GoalSet
	activeTask *domain.Task
	messages   []*domain.ChatMessage
	insertErr  error
	loadErr    error
	clock      time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeRepo) GetUserGoalSet(_ context.Context, _ string) (*domain.GoalSet, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.goalSet, nil
}

func (f *fakeRepo) FindActiveTask(_ context.Context, _ string) (*domain.Task, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.activeTask, nil
}

func (f *fakeRepo) InsertChatMessage(_ context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clock = f.clock.Add(time.Millisecond)
	stored := *m
	stored.ID = primitive.NewObjectID()
	stored.Timestamp = f.clock
	f.messages = append(f.messages, &stored)
	return &stored, nil
}

func (f *fakeRepo) ChatHistory(_ context.Context, userID string) ([]*domain.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.ChatMessage
	for _, m := range f.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeCompleter struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestRespondAsksForGoalsWhenNoneSet(t *testing.T) {
	repo := newFakeRepo()
	completer := &fakeCompleter{reply: "should not be used"}
	svc := NewService(repo, completer)

	reply, err := svc.Respond(context.Background(), ChatRequest{UserID: "u2", Message: "anything at all"})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if reply.Message != "What are your learning goals?" {
		t.Errorf("expected goals prompt, got %q", reply.Message)
	}
	if completer.calls != 0 {
		t.Errorf("completer should not be called on the ask_goals path, got %d calls", completer.calls)
	}
}

func TestRespondGoalsPrecedeActiveTask(t *testing.T) {
	repo := newFakeRepo()
	repo.activeTask = &domain.Task{Title: "Ship Y", Status: domain.TaskStatusInProgress}
	svc := NewService(repo, &fakeCompleter{})

	reply, err := svc.Respond(context.Background(), ChatRequest{UserID: "u2", Message: "hi"})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if reply.Message != "What are your learning goals?" {
		t.Errorf("empty goal list must win over task state, got %q", reply.Message)
	}
}

func TestRespondQueriesActiveTask(t *testing.T) {
	repo := newFakeRepo()
	repo.goalSet = &domain.GoalSet{UserID: "u1", Goals: []string{"Learn X"}}
	repo.activeTask = &domain.Task{Title: "Ship Y", Status: domain.TaskStatusInProgress, AssignedTo: "u1"}
	completer := &fakeCompleter{reply: "should not be used"}
	svc := NewService(repo, completer)

	reply, err := svc.Respond(context.Background(), ChatRequest{UserID: "u1", Message: "hi"})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if reply.Message != "How is your task 'Ship Y' going?" {
		t.Errorf("expected task query, got %q", reply.Message)
	}
	if completer.calls != 0 {
		t.Errorf("completer should not be called on the query_task path")
	}

	history, err := repo.ChatHistory(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ChatHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 chat records, got %d", len(history))
	}
}

func TestRespondGeneralChatUsesCompleter(t *testing.T) {
	repo := newFakeRepo()
	repo.goalSet = &domain.GoalSet{UserID: "u3", Goals: []string{"Learn X"}}
	completer := &fakeCompleter{reply: "Great question!"}
	svc := NewService(repo, completer)

	reply, err := svc.Respond(context.Background(), ChatRequest{UserID: "u3", Message: "tell me something"})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if reply.Message != "Great question!" {
		t.Errorf("expected completer reply verbatim, got %q", reply.Message)
	}
	if reply.UserType != domain.UserTypeAgent {
		t.Errorf("expected agent-authored record, got %q", reply.UserType)
	}
	if !strings.Contains(completer.lastPrompt, "tell me something") {
		t.Errorf("user message missing from prompt:\n%s", completer.lastPrompt)
	}
}

func TestRespondDegradesOnCompletionFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.goalSet = &domain.GoalSet{UserID: "u3", Goals: []string{"Learn X"}}
	svc := NewService(repo, &fakeCompleter{err: errors.New("model unavailable")})

	reply, err := svc.Respond(context.Background(), ChatRequest{UserID: "u3", Message: "hi"})
	if err != nil {
		t.Fatalf("completion failure must not fail the request: %v", err)
	}

	if !strings.HasPrefix(reply.Message, "I apologize") {
		t.Errorf("expected apology fallback, got %q", reply.Message)
	}

	// The degraded reply is still persisted as the agent record.
	history, _ := repo.ChatHistory(context.Background(), "u3")
	if len(history) != 2 || history[1].Message != reply.Message {
		t.Errorf("expected persisted fallback reply, got %+v", history)
	}
}

func TestRespondWithoutCompleterUsesFixedReply(t *testing.T) {
	repo := newFakeRepo()
	repo.goalSet = &domain.GoalSet{UserID: "u3", Goals: []string{"Learn X"}}
	svc := NewService(repo, nil)

	reply, err := svc.Respond(context.Background(), ChatRequest{UserID: "u3", Message: "hi"})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if reply.Message != "How can I help you today?" {
		t.Errorf("expected fixed general reply, got %q", reply.Message)
	}
}

func TestRespondPersistsOrderedHistory(t *testing.T) {
	repo := newFakeRepo()
	repo.goalSet = &domain.GoalSet{UserID: "u1", Goals: []string{"Learn X"}}
	svc := NewService(repo, &fakeCompleter{reply: "sure"})

	if _, err := svc.Respond(context.Background(), ChatRequest{UserID: "u1", UserType: "user", Message: "hello"}); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	history, err := repo.ChatHistory(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ChatHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history))
	}

	userMsg, agentMsg := history[0], history[1]
	if userMsg.UserType != domain.UserTypeUser || userMsg.Message != "hello" {
		t.Errorf("first record should be the inbound message, got %+v", userMsg)
	}
	if agentMsg.UserType != domain.UserTypeAgent {
		t.Errorf("second record should be the agent reply, got %+v", agentMsg)
	}
	if agentMsg.Timestamp.Before(userMsg.Timestamp) {
		t.Errorf("agent reply must not sort before the inbound message")
	}
}

func TestRespondPropagatesStorageErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.loadErr = fmt.Errorf("connection reset")
	svc := NewService(repo, &fakeCompleter{})

	if _, err := svc.Respond(context.Background(), ChatRequest{UserID: "u1", Message: "hi"}); err == nil {
		t.Fatal("expected storage error to propagate")
	}

	repo = newFakeRepo()
	repo.goalSet = &domain.GoalSet{UserID: "u1", Goals: []string{"Learn X"}}
	repo.insertErr = fmt.Errorf("write failed")
	svc = NewService(repo, &fakeCompleter{reply: "ok"})

	if _, err := svc.Respond(context.Background(), ChatRequest{UserID: "u1", Message: "hi"}); err == nil {
		t.Fatal("expected persistence error to propagate")
	}
}
