package ports

import (
	"context"

	"fintrack-backend/domain"
)

// IdentityProvider is the managed authentication service.
type IdentityProvider interface {
	// SignUp registers and confirms an account, then logs it in.
	SignUp(ctx context.Context, email, password, name string) (*domain.AuthSession, error)
	// Login authenticates by email and password.
	Login(ctx context.Context, email, password string) (*domain.AuthSession, error)
	// Refresh exchanges a refresh token for fresh access tokens.
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthSession, error)
	// ResetPassword starts the provider's password reset flow.
	ResetPassword(ctx context.Context, email string) error
	// GetUser resolves the account behind an access token.
	GetUser(ctx context.Context, accessToken string) (*domain.IdentityUser, error)
	// ListContacts returns every account's reachable email/phone endpoints.
	ListContacts(ctx context.Context) ([]domain.Recipient, error)
}
