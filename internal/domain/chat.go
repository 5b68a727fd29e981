package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat message author kinds.
const (
	UserTypeUser  = "user"
	UserTypeAgent = "agent"
)

// ChatMessage is a single chat history record. Timestamps are assigned
// by the persistence layer, never by the caller; history retrieval
// sorts ascending by timestamp. Messages are immutable once written.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	UserType  string             `bson:"userType" json:"userType"`
	Message   string             `bson:"message" json:"message"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
