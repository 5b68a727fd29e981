// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/alumnx/mentor-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines the interface for persisting projects, tasks,
// goals, agents and chat history.
//
// Lookups by id return (nil, nil) when no document matches; callers map
// that to a not-found response. Delete operations report the number of
// documents removed.
type Repository interface {
	// CreateProject inserts a project and returns the stored document.
	CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error)

	// ListProjects returns all projects, newest first.
	ListProjects(ctx context.Context) ([]*domain.Project, error)

	// GetProject retrieves a project by id.
	GetProject(ctx context.Context, id primitive.ObjectID) (*domain.Project, error)

	// UpdateProject applies the non-nil fields of update and returns the
	// resulting document.
	UpdateProject(ctx context.Context, id primitive.ObjectID, update *domain.ProjectUpdate) (*domain.Project, error)

	// DeleteProject removes a project and all tasks that reference it.
	DeleteProject(ctx context.Context, id primitive.ObjectID) (int64, error)

	// ProjectStats returns task counts by status for a project.
	ProjectStats(ctx context.Context, projectID string) (*domain.ProjectStats, error)

	// CreateTask inserts a task and returns the stored document.
	CreateTask(ctx context.Context, t *domain.Task) (*domain.Task, error)

	// ListTasks returns tasks, newest first, optionally filtered by
	// project id (empty string = all tasks).
	ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error)

	// ListUserTasks returns all tasks assigned to a user.
	ListUserTasks(ctx context.Context, userID string) ([]*domain.Task, error)

	// GetTask retrieves a task by id.
	GetTask(ctx context.Context, id primitive.ObjectID) (*domain.Task, error)

	// UpdateTask applies the non-nil fields of update and returns the
	// resulting document.
	UpdateTask(ctx context.Context, id primitive.ObjectID, update *domain.TaskUpdate) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id primitive.ObjectID) (int64, error)

	// FindActiveTask returns one task assigned to the user whose status
	// is not "completed", or nil if none exists. When several qualify,
	// which one is returned is unspecified.
	FindActiveTask(ctx context.Context, userID string) (*domain.Task, error)

	// UpsertGoalSet creates or replaces the user's goal list and returns
	// the stored record.
	UpsertGoalSet(ctx context.Context, userID string, goals []string) (*domain.GoalSet, error)

	// ListGoalSets returns goal sets, optionally filtered by user id
	// (empty string = all).
	ListGoalSets(ctx context.Context, userID string) ([]*domain.GoalSet, error)

	// GetGoalSet retrieves a goal set by document id.
	GetGoalSet(ctx context.Context, id primitive.ObjectID) (*domain.GoalSet, error)

	// GetUserGoalSet retrieves the goal set for a user, or nil if the
	// user has never submitted goals.
	GetUserGoalSet(ctx context.Context, userID string) (*domain.GoalSet, error)

	// CreateAgent inserts an agent registry entry.
	CreateAgent(ctx context.Context, a *domain.AIAgent) (*domain.AIAgent, error)

	// ListAgents returns agent entries, optionally filtered by user id
	// (empty string = all).
	ListAgents(ctx context.Context, userID string) ([]*domain.AIAgent, error)

	// GetAgent retrieves an agent entry by id.
	GetAgent(ctx context.Context, id primitive.ObjectID) (*domain.AIAgent, error)

	// UpdateAgent applies the non-nil fields of update and returns the
	// resulting document.
	UpdateAgent(ctx context.Context, id primitive.ObjectID, update *domain.AIAgentUpdate) (*domain.AIAgent, error)

	// DeleteAgent removes an agent entry.
	DeleteAgent(ctx context.Context, id primitive.ObjectID) (int64, error)

	// InsertChatMessage persists a chat record with a server-assigned
	// timestamp and returns the stored document.
	InsertChatMessage(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error)

	// ChatHistory returns a user's chat records in ascending timestamp
	// order.
	ChatHistory(ctx context.Context, userID string) ([]*domain.ChatMessage, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}
