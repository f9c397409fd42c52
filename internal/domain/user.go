package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root: every exercise entry lives inside its owner's
// log array and is never addressed on its own.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	// Log keeps insertion order (the order entries were added, not date
	// order) and is append-only.
	Log []Exercise `bson:"log" json:"log"`
}

// Exercise is a single log entry embedded in its owner's User document.
type Exercise struct {
	Description string `bson:"description" json:"description"`
	Duration    int    `bson:"duration" json:"duration"` // minutes
	Date        string `bson:"date" json:"date"`         // YYYY-MM-DD
}
