// Package services holds the application services sitting between the HTTP
// handlers and the managed-service ports.
package services

import (
	"context"

	"fintrack-backend/application/ports"
	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"

	"go.uber.org/zap"
)

// AuthService fronts the identity provider and keeps the profile table in
// step with the user pool.
type AuthService struct {
	identity ports.IdentityProvider
	users    ports.UserRepository
	logger   *zap.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(identity ports.IdentityProvider, users ports.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		identity: identity,
		users:    users,
		logger:   logger,
	}
}

// SignUp registers the account with the identity provider and mirrors it as
// a profile row. The email index is checked first so a taken email fails
// before the provider call; a failed profile write does not undo the
// provider-side account, it is logged and the signup still succeeds.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (*domain.AuthSession, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !apperrors.IsNotFound(err) {
		s.logger.Warn("email uniqueness check failed, deferring to the provider",
			zap.String("email", email),
			zap.Error(err),
		)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("an account with this email already exists")
	}

	session, err := s.identity.SignUp(ctx, email, password, name)
	if err != nil {
		return nil, err
	}

	profile := domain.NewUserProfile(session.User.ID, email, name)
	if err := s.users.Create(ctx, profile); err != nil && !apperrors.IsConflict(err) {
		s.logger.Warn("signup succeeded but profile row was not created",
			zap.String("userID", profile.ID),
			zap.Error(err),
		)
	}

	return session, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	return s.identity.Login(ctx, email, password)
}

// Refresh exchanges a refresh token for fresh access tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthSession, error) {
	return s.identity.Refresh(ctx, refreshToken)
}

// ResetPassword starts the provider's password reset flow.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	return s.identity.ResetPassword(ctx, email)
}

// CurrentUser resolves the account behind an access token.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domain.IdentityUser, error) {
	return s.identity.GetUser(ctx, accessToken)
}
