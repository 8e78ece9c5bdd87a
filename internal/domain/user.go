package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a profile document, at most one per identity-provider uid.
// Creation is an upsert keyed by UserID: a second create for the same
// uid replaces the existing profile instead of erroring.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"` // unique
	Name      string             `bson:"name" json:"name"`
	Gender    string             `bson:"gender" json:"gender"`
	Age       int                `bson:"age" json:"age"`
	Height    float64            `bson:"height" json:"height"` // cm
	Weight    float64            `bson:"weight" json:"weight"` // kg
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
