package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity represents one logged exercise session.
type Activity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId" json:"userId"` // identity-provider uid of the owner; immutable after creation
	ActivityType string             `bson:"activityType" json:"activityType"` // e.g. "run", "cycle", "swim"
	Title        string             `bson:"title" json:"title"`
	DateTime     time.Time          `bson:"dateTime" json:"dateTime"`
	Duration     float64            `bson:"duration" json:"duration"`     // minutes
	EnergyBurn   float64            `bson:"energyBurn" json:"energyBurn"` // kcal
	Distance     float64            `bson:"distance,omitempty" json:"distance,omitempty"` // km; not meaningful for every activity type
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
