package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalSet is the single per-user record holding an ordered list of
// free-text learning goals. There is at most one goal set per user;
// submitting goals again replaces the list in place.
type GoalSet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Goals     []string           `bson:"goals" json:"goals"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
