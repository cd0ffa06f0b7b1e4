package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile mirrors a row in the user profiles table. The identity provider
// owns credentials; this record only carries application-level profile data.
type UserProfile struct {
	ID        string            `json:"id" dynamodbav:"id"`
	Email     string            `json:"email" dynamodbav:"email"`
	Name      string            `json:"name" dynamodbav:"name"`
	AvatarKey string            `json:"avatar_key,omitempty" dynamodbav:"avatar_key,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
	CreatedAt string            `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt string            `json:"updated_at" dynamodbav:"updated_at"`
}

// UserProfileUpdate carries a partial profile update.
type UserProfileUpdate struct {
	Name      *string            `json:"name,omitempty"`
	AvatarKey *string            `json:"avatar_key,omitempty"`
	Metadata  *map[string]string `json:"metadata,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u UserProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.AvatarKey == nil && u.Metadata == nil
}

// NewUserProfile builds a profile row for a freshly signed-up user.
// When the identity provider already assigned an id (the Cognito sub),
// pass it through so the two systems agree on the identifier.
func NewUserProfile(id, email, name string) *UserProfile {
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return &UserProfile{
		ID:        id,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
