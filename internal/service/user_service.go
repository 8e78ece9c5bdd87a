package service

import (
	"context"
	"errors"

	"justfit/tracker/internal/domain"
	"justfit/tracker/internal/repository"
)

// ProfileInput carries the client-supplied fields of a user profile.
type ProfileInput struct {
	Name   string
	Gender string
	Age    int
	Height float64
	Weight float64
}

type UserService interface {
	Get(ctx context.Context, userID string) ([]domain.User, error)
	// Upsert creates or fully replaces the caller's profile.
	Upsert(ctx context.Context, userID string, in ProfileInput) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Get retrieves the caller's profile documents (zero or one).
func (s *userService) Get(ctx context.Context, userID string) ([]domain.User, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	return s.userRepo.GetByUserID(ctx, userID)
}

// Upsert creates or replaces the profile keyed by the caller's user id.
func (s *userService) Upsert(ctx context.Context, userID string, in ProfileInput) (*domain.User, error) {
	if userID == "" {
		return nil, errors.New("user ID is required to save a profile")
	}

	user := &domain.User{
		UserID: userID,
		Name:   in.Name,
		Gender: in.Gender,
		Age:    in.Age,
		Height: in.Height,
		Weight: in.Weight,
	}
	return s.userRepo.Upsert(ctx, user)
}
