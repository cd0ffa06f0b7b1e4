package services

import (
	"context"
	"errors"
	"testing"

	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockUserRepository is a testify mock for ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, update domain.UserProfileUpdate) (*domain.UserProfile, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestAuthService_SignUp_MirrorsProfileRow(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockIdentity := new(MockIdentityProvider)
	mockUsers := new(MockUserRepository)
	service := NewAuthService(mockIdentity, mockUsers, zap.NewNop())

	session := &domain.AuthSession{
		AccessToken: "token",
		User:        domain.IdentityUser{ID: "sub-123", Email: "a@example.com", Name: "Ada"},
	}
	mockUsers.On("GetByEmail", ctx, "a@example.com").Return(nil, apperrors.NewNotFoundError("user profile"))
	mockIdentity.On("SignUp", ctx, "a@example.com", "Secret123!", "Ada").Return(session, nil)
	mockUsers.On("Create", ctx, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.ID == "sub-123" && p.Email == "a@example.com" && p.Name == "Ada"
	})).Return(nil)

	// Act
	got, err := service.SignUp(ctx, "a@example.com", "Secret123!", "Ada")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, session, got)
	mockUsers.AssertExpectations(t)
}

func TestAuthService_SignUp_ProfileWriteFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	mockIdentity := new(MockIdentityProvider)
	mockUsers := new(MockUserRepository)
	service := NewAuthService(mockIdentity, mockUsers, zap.NewNop())

	session := &domain.AuthSession{User: domain.IdentityUser{ID: "sub-123", Email: "a@example.com"}}
	mockUsers.On("GetByEmail", ctx, "a@example.com").Return(nil, apperrors.NewNotFoundError("user profile"))
	mockIdentity.On("SignUp", ctx, "a@example.com", "Secret123!", "Ada").Return(session, nil)
	mockUsers.On("Create", ctx, mock.AnythingOfType("*domain.UserProfile")).Return(errors.New("table down"))

	got, err := service.SignUp(ctx, "a@example.com", "Secret123!", "Ada")

	assert.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestAuthService_SignUp_TakenEmailIsConflict(t *testing.T) {
	ctx := context.Background()
	mockIdentity := new(MockIdentityProvider)
	mockUsers := new(MockUserRepository)
	service := NewAuthService(mockIdentity, mockUsers, zap.NewNop())

	existing := &domain.UserProfile{ID: "sub-999", Email: "a@example.com"}
	mockUsers.On("GetByEmail", ctx, "a@example.com").Return(existing, nil)

	_, err := service.SignUp(ctx, "a@example.com", "Secret123!", "Ada")

	assert.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	mockIdentity.AssertNotCalled(t, "SignUp")
	mockUsers.AssertNotCalled(t, "Create")
}

func TestAuthService_SignUp_ProviderConflictPropagates(t *testing.T) {
	ctx := context.Background()
	mockIdentity := new(MockIdentityProvider)
	mockUsers := new(MockUserRepository)
	service := NewAuthService(mockIdentity, mockUsers, zap.NewNop())

	mockUsers.On("GetByEmail", ctx, "a@example.com").Return(nil, apperrors.NewNotFoundError("user profile"))
	mockIdentity.On("SignUp", ctx, "a@example.com", "Secret123!", "Ada").
		Return(nil, apperrors.NewConflictError("an account with this email already exists"))

	_, err := service.SignUp(ctx, "a@example.com", "Secret123!", "Ada")

	assert.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	mockUsers.AssertNotCalled(t, "Create")
}
