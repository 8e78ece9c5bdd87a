package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"justfit/tracker/internal/domain"
	"justfit/tracker/internal/repository"
)

// ErrActivityNotFound covers both a nonexistent id and an id owned by a
// different user; callers cannot tell the two apart.
var ErrActivityNotFound = errors.New("activity not found")

// ActivityInput carries the client-supplied fields of an activity.
// The owning user id is never part of it; it is stamped from the
// verified identity.
type ActivityInput struct {
	ActivityType string
	Title        string
	DateTime     time.Time
	Duration     float64
	EnergyBurn   float64
	Distance     float64
	Description  string
}

type ActivityService interface {
	Create(ctx context.Context, userID string, in ActivityInput) (*domain.Activity, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Activity, error)
	Update(ctx context.Context, userID string, id primitive.ObjectID, in ActivityInput) (*domain.Activity, error)
	Delete(ctx context.Context, userID string, id primitive.ObjectID) (*domain.Activity, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

// NewActivityService creates a new instance of activityService.
func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

// Create persists a new activity stamped with the caller's user id.
func (s *activityService) Create(ctx context.Context, userID string, in ActivityInput) (*domain.Activity, error) {
	if userID == "" {
		return nil, errors.New("user ID is required to create an activity")
	}

	activity := &domain.Activity{
		UserID:       userID,
		ActivityType: in.ActivityType,
		Title:        in.Title,
		DateTime:     in.DateTime,
		Duration:     in.Duration,
		EnergyBurn:   in.EnergyBurn,
		Distance:     in.Distance,
		Description:  in.Description,
	}

	id, err := s.activityRepo.Create(ctx, activity)
	if err != nil {
		return nil, err
	}
	activity.ID = id
	return activity, nil
}

// ListByUser retrieves all activities owned by the caller.
func (s *activityService) ListByUser(ctx context.Context, userID string) ([]domain.Activity, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	return s.activityRepo.GetByUserID(ctx, userID)
}

// Update replaces all fields of the activity matching (id, userID).
func (s *activityService) Update(ctx context.Context, userID string, id primitive.ObjectID, in ActivityInput) (*domain.Activity, error) {
	activity := &domain.Activity{
		ID:           id,
		UserID:       userID,
		ActivityType: in.ActivityType,
		Title:        in.Title,
		DateTime:     in.DateTime,
		Duration:     in.Duration,
		EnergyBurn:   in.EnergyBurn,
		Distance:     in.Distance,
		Description:  in.Description,
	}

	updated, err := s.activityRepo.Replace(ctx, activity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the activity matching (id, userID) and returns its prior state.
func (s *activityService) Delete(ctx context.Context, userID string, id primitive.ObjectID) (*domain.Activity, error) {
	deleted, err := s.activityRepo.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return deleted, nil
}
