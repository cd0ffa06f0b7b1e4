package services

import (
	"context"

	"fintrack-backend/application/ports"
	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"
)

// UserService exposes profile CRUD over the user repository.
type UserService struct {
	users ports.UserRepository
}

// NewUserService creates a user service.
func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get fetches a profile by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	return s.users.GetByID(ctx, id)
}

// GetByEmail fetches a profile through the email index.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	return s.users.GetByEmail(ctx, email)
}

// Update applies a partial profile update.
func (s *UserService) Update(ctx context.Context, id string, update domain.UserProfileUpdate) (*domain.UserProfile, error) {
	if update.IsEmpty() {
		return nil, apperrors.NewValidationError("no update data provided").WithCode("NO_DATA")
	}
	return s.users.Update(ctx, id, update)
}

// Delete removes a profile. Expenses referencing the user are left alone;
// the store does not reconcile cross-entity consistency.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
