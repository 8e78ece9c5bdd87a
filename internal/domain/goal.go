package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal represents a target the user intends to reach by a deadline.
type Goal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId" json:"userId"` // immutable after creation
	ActivityType string             `bson:"activityType" json:"activityType"`
	Deadline     time.Time          `bson:"deadline" json:"deadline"`
	EnergyBurn   float64            `bson:"energyBurn" json:"energyBurn"`
	Duration     float64            `bson:"duration" json:"duration"`
	Distance     float64            `bson:"distance,omitempty" json:"distance,omitempty"`
	// Status is free-form; the mobile client owns the vocabulary
	// (typically "pending" or "complete") and any value is stored as-is.
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
