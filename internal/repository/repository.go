package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"justfit/tracker/internal/domain"
)

// ErrNotFound is returned when a single-document operation matches nothing.
// For the (id, userId) compound filters this also covers documents that
// exist but belong to a different user; the two cases are indistinguishable.
var ErrNotFound = RepositoryError("not found")

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string { return string(e) }

// ActivityRepository defines the interface for interacting with activity data.
// Every read and mutation beyond Create is scoped by the owning user id.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Activity, error)
	// Replace overwrites all mutable fields of the document matching
	// (activity.ID, activity.UserID) and returns the post-update document.
	Replace(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	// Delete removes the document matching (id, userID) and returns its
	// prior state.
	Delete(ctx context.Context, id primitive.ObjectID, userID string) (*domain.Activity, error)
}

// GoalRepository defines the interface for interacting with goal data.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Goal, error)
	// UpdateStatus writes only the status field; all other fields of the
	// matched document are left untouched.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, userID, status string) (*domain.Goal, error)
	Delete(ctx context.Context, id primitive.ObjectID, userID string) (*domain.Goal, error)
}

// UserRepository defines the interface for interacting with profile data.
type UserRepository interface {
	// GetByUserID returns the profiles for a uid; in practice zero or one,
	// since Upsert keys on userId.
	GetByUserID(ctx context.Context, userID string) ([]domain.User, error)
	// Upsert replaces the profile keyed by user.UserID, creating it if
	// absent, and returns the resulting document.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
}
