package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"justfit/tracker/internal/domain"
	"justfit/tracker/internal/repository"
)

const activityCollectionName = "activities"

// mongoActivityRepository implements repository.ActivityRepository
type mongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new Activity repository backed by MongoDB.
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{
		collection: db.Collection(activityCollectionName),
	}
}

// Create inserts a new activity stamped with creation timestamps.
func (r *mongoActivityRepository) Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error) {
	if activity.UserID == "" {
		return primitive.NilObjectID, errors.New("activity user ID is required")
	}

	activity.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	activity.CreatedAt = now
	activity.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves all activities owned by a user, in natural store order.
func (r *mongoActivityRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Activity, error) {
	var activities []domain.Activity
	filter := bson.M{"userId": userID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// Replace overwrites all mutable fields of the activity matching
// (activity.ID, activity.UserID). The compound filter is the ownership
// check: a valid id owned by another user matches nothing.
func (r *mongoActivityRepository) Replace(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	filter := bson.M{"_id": activity.ID, "userId": activity.UserID}
	update := bson.M{
		"$set": bson.M{
			"activityType": activity.ActivityType,
			"title":        activity.Title,
			"dateTime":     activity.DateTime,
			"duration":     activity.Duration,
			"energyBurn":   activity.EnergyBurn,
			"distance":     activity.Distance,
			"description":  activity.Description,
			"updatedAt":    time.Now().UTC(),
			// userId is never written here; ownership is immutable
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Activity
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes the activity matching (id, userID) and returns its prior state.
func (r *mongoActivityRepository) Delete(ctx context.Context, id primitive.ObjectID, userID string) (*domain.Activity, error) {
	filter := bson.M{"_id": id, "userId": userID}

	var deleted domain.Activity
	err := r.collection.FindOneAndDelete(ctx, filter).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}

// EnsureActivityIndexes creates necessary indexes for the activities collection.
func EnsureActivityIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Every list and every (id, userId) mutation filters by owner.
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
