package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"justfit/tracker/internal/domain"
	"justfit/tracker/internal/repository"
)

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// GetByUserID retrieves the profile documents for a uid. The unique userId
// index keeps this to zero or one documents.
func (r *mongoUserRepository) GetByUserID(ctx context.Context, userID string) ([]domain.User, error) {
	var users []domain.User
	filter := bson.M{"userId": userID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Upsert replaces the profile keyed by user.UserID, creating it if absent,
// and returns the resulting document. The write is a single atomic
// findOneAndUpdate; concurrent upserts for the same uid cannot produce
// duplicates thanks to the unique index.
func (r *mongoUserRepository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.UserID == "" {
		return nil, errors.New("user ID is required")
	}

	now := time.Now().UTC()
	filter := bson.M{"userId": user.UserID}
	update := bson.M{
		"$set": bson.M{
			"name":      user.Name,
			"gender":    user.Gender,
			"age":       user.Age,
			"height":    user.Height,
			"weight":    user.Weight,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"userId":    user.UserID,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetUpsert(true)

	var saved domain.User
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One profile per identity; upserts key on this field.
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
