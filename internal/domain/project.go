// Package domain contains core domain types for the mentor API.
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project represents a tracked project.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	StartDate   *time.Time         `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ProjectUpdate holds the mutable fields of a project. Nil fields are
// left unchanged.
type ProjectUpdate struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// ProjectStats summarizes task counts for a project by status.
type ProjectStats struct {
	TotalTasks int64 `json:"total_tasks"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Blocked    int64 `json:"blocked"`
}
