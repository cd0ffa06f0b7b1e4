// Package auth carries the authenticated-user request context and the
// identity-provider token verification used by the HTTP middleware.
package auth

import (
	"context"

	apperrors "fintrack-backend/pkg/errors"
)

// UserContext is the authenticated caller attached to a request.
type UserContext struct {
	UserID   string
	Email    string
	Name     string
	Username string
}

type contextKey string

const userContextKey contextKey = "fintrack.user"

// SetUserInContext attaches the user context to a request context.
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext retrieves the user context set by the auth middleware.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, apperrors.NewUnauthorizedError("no authenticated user in context")
	}
	return user, nil
}
