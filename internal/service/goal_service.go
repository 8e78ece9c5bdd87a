package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"justfit/tracker/internal/domain"
	"justfit/tracker/internal/repository"
)

var ErrGoalNotFound = errors.New("goal not found")

// GoalInput carries the client-supplied fields of a goal.
type GoalInput struct {
	ActivityType string
	Deadline     time.Time
	EnergyBurn   float64
	Duration     float64
	Distance     float64
	Status       string
}

// GoalService is deliberately narrower on update than on create: only the
// status field can change after creation.
type GoalService interface {
	Create(ctx context.Context, userID string, in GoalInput) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateStatus(ctx context.Context, userID string, id primitive.ObjectID, status string) (*domain.Goal, error)
	Delete(ctx context.Context, userID string, id primitive.ObjectID) (*domain.Goal, error)
}

type goalService struct {
	goalRepo repository.GoalRepository
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

// Create persists a new goal stamped with the caller's user id.
func (s *goalService) Create(ctx context.Context, userID string, in GoalInput) (*domain.Goal, error) {
	if userID == "" {
		return nil, errors.New("user ID is required to create a goal")
	}

	goal := &domain.Goal{
		UserID:       userID,
		ActivityType: in.ActivityType,
		Deadline:     in.Deadline,
		EnergyBurn:   in.EnergyBurn,
		Duration:     in.Duration,
		Distance:     in.Distance,
		Status:       in.Status,
	}

	id, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.ID = id
	return goal, nil
}

// ListByUser retrieves all goals owned by the caller.
func (s *goalService) ListByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	return s.goalRepo.GetByUserID(ctx, userID)
}

// UpdateStatus transitions the goal's status; nothing else crosses this
// boundary, so extra fields a client submits can never reach the store.
func (s *goalService) UpdateStatus(ctx context.Context, userID string, id primitive.ObjectID, status string) (*domain.Goal, error) {
	updated, err := s.goalRepo.UpdateStatus(ctx, id, userID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the goal matching (id, userID) and returns its prior state.
func (s *goalService) Delete(ctx context.Context, userID string, id primitive.ObjectID) (*domain.Goal, error) {
	deleted, err := s.goalRepo.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return deleted, nil
}
