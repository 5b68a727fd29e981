package mentor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alumnx/mentor-api/internal/domain"
	"github.com/alumnx/mentor-api/internal/store"
)

// Service runs the per-request response pipeline: analyze, route and
// generate, persist. It holds no cross-request state; every invocation
// re-reads the user's goals and task from storage.
type Service struct {
	repo      store.Repository
	completer Completer
}

// NewService creates a mentor service. completer may be nil, in which
// case the general-chat strategy degrades to a fixed reply instead of
// calling the model.
func NewService(repo store.Repository, completer Completer) *Service {
	return &Service{
		repo:      repo,
		completer: completer,
	}
}

// Respond handles one inbound chat message end to end and returns the
// persisted agent reply record.
//
// Storage failures propagate to the caller. Completion failures do
// not: the reply degrades to a fixed apology and the request still
// succeeds.
func (s *Service) Respond(ctx context.Context, req ChatRequest) (*domain.ChatMessage, error) {
	goals, activeTask, err := s.loadContext(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	route := SelectRoute(goals, activeTask)
	reply := s.generate(ctx, route, goals, activeTask, req.Message)

	slog.Info("Mentor reply generated",
		"user_id", req.UserID,
		"route", string(route),
		"goal_count", len(goals),
		"has_active_task", activeTask != nil,
	)

	userType := req.UserType
	if userType == "" {
		userType = domain.UserTypeUser
	}

	// The inbound message is written first so history sorted by
	// timestamp yields question before answer. A crash between the two
	// writes leaves a dangling user message; there is no compensating
	// rollback.
	if _, err := s.repo.InsertChatMessage(ctx, &domain.ChatMessage{
		UserID:   req.UserID,
		UserType: userType,
		Message:  req.Message,
	}); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	agentMsg, err := s.repo.InsertChatMessage(ctx, &domain.ChatMessage{
		UserID:   req.UserID,
		UserType: domain.UserTypeAgent,
		Message:  reply,
	})
	if err != nil {
		return nil, fmt.Errorf("persist agent reply: %w", err)
	}

	return agentMsg, nil
}

// loadContext fetches the user's goal list and one non-completed task.
// A missing goal set yields an empty list; a missing task yields nil.
func (s *Service) loadContext(ctx context.Context, userID string) ([]string, *domain.Task, error) {
	goalSet, err := s.repo.GetUserGoalSet(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load goals: %w", err)
	}

	var goals []string
	if goalSet != nil {
		goals = goalSet.Goals
	}

	activeTask, err := s.repo.FindActiveTask(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load active task: %w", err)
	}

	return goals, activeTask, nil
}

func (s *Service) generate(ctx context.Context, route Route, goals []string, activeTask *domain.Task, message string) string {
	switch route {
	case RouteAskGoals:
		return askGoalsReply

	case RouteQueryTask:
		title := activeTask.Title
		if title == "" {
			title = "Untitled task"
		}
		return fmt.Sprintf("How is your task '%s' going?", title)

	default:
		if s.completer == nil {
			return generalReply
		}

		text, err := s.completer.Complete(ctx, BuildPrompt(goals, activeTask, message))
		if err != nil {
			slog.Error("Completion failed, degrading to fallback reply", "error", err)
			return apologyReply
		}
		return text
	}
}
