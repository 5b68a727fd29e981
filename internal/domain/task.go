package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task status labels. "completed" is terminal; everything else counts
// as active for the mentor's context lookup.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusBlocked    = "blocked"
)

// Task represents a unit of work within a project, optionally assigned
// to a user.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID   string             `bson:"project_id" json:"project_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Priority    string             `bson:"priority" json:"priority"`
	AssignedTo  string             `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	DueDate     *time.Time         `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsCompleted returns true if the task has reached its terminal status.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// TaskUpdate holds the mutable fields of a task. Nil fields are left
// unchanged.
type TaskUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}
