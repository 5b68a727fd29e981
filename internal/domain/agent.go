package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AIAgent is a registry entry for a named agent belonging to a user.
type AIAgent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// AIAgentUpdate holds the mutable fields of an agent registry entry.
type AIAgentUpdate struct {
	UserID *string `json:"userId,omitempty"`
	Name   *string `json:"name,omitempty"`
}
