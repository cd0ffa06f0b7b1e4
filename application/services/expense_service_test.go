package services

import (
	"context"
	"testing"

	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Helper function to create float64 pointer
func floatPtr(f float64) *float64 {
	return &f
}

// Helper function to create string pointer
func strPtr(s string) *string {
	return &s
}

// MockExpenseRepository is a testify mock for ports.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListByUser(ctx context.Context, userID string, limit int32) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListByCategory(ctx context.Context, category string, limit int32) ([]domain.Expense, error) {
	args := m.Called(ctx, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListAll(ctx context.Context, limit int32) ([]domain.Expense, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Update(ctx context.Context, id string, update domain.ExpenseUpdate) (*domain.Expense, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestExpenseService_Create_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Expense")).Return(nil)

	// Act
	expense, err := service.Create(ctx, CreateExpenseInput{
		UserID:      "user123",
		ExpenseDate: "2024-03-01T12:00:00Z",
		Amount:      42.50,
		Category:    "groceries",
		Merchant:    "Corner Store",
	})

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, "user123", expense.UserID)
	assert.Equal(t, 42.50, expense.Amount)
	assert.Equal(t, "groceries", expense.Category)
	assert.NotEmpty(t, expense.CreatedAt)
	assert.Equal(t, expense.CreatedAt, expense.UpdatedAt)
	mockRepo.AssertExpectations(t)
}

func TestExpenseService_Create_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	_, err := service.Create(ctx, CreateExpenseInput{
		UserID:      "user123",
		ExpenseDate: "2024-03-01T12:00:00Z",
		Amount:      0,
	})

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "Create")
}

func TestExpenseService_List_DefaultsAndClampsLimit(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	// Zero limit falls back to the default
	mockRepo.On("ListAll", ctx, int32(100)).Return([]domain.Expense{}, nil).Once()
	_, err := service.List(ctx, ListExpensesFilter{})
	assert.NoError(t, err)

	// Oversized limit is clamped to the maximum
	mockRepo.On("ListAll", ctx, int32(500)).Return([]domain.Expense{}, nil).Once()
	_, err = service.List(ctx, ListExpensesFilter{Limit: 10000})
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestExpenseService_List_UserFilterWinsOverCategory(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	expected := []domain.Expense{{ID: "e1", UserID: "user123"}}
	mockRepo.On("ListByUser", ctx, "user123", int32(25)).Return(expected, nil)

	expenses, err := service.List(ctx, ListExpensesFilter{
		UserID:   "user123",
		Category: "groceries",
		Limit:    25,
	})

	assert.NoError(t, err)
	assert.Equal(t, expected, expenses)
	mockRepo.AssertNotCalled(t, "ListByCategory")
	mockRepo.AssertExpectations(t)
}

func TestExpenseService_List_ByCategory(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	mockRepo.On("ListByCategory", ctx, "travel", int32(100)).Return([]domain.Expense{}, nil)

	_, err := service.List(ctx, ListExpensesFilter{Category: "travel"})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestExpenseService_Update_RejectsEmptyUpdate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	_, err := service.Update(ctx, "e1", domain.ExpenseUpdate{})

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, "NO_DATA", appErr.Code)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestExpenseService_Update_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	_, err := service.Update(ctx, "e1", domain.ExpenseUpdate{Amount: floatPtr(-5)})

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "Update")
}

func TestExpenseService_Update_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	update := domain.ExpenseUpdate{
		Amount: floatPtr(99.99),
		Note:   strPtr("updated note"),
	}
	stored := &domain.Expense{ID: "e1", Amount: 99.99, Note: "updated note"}
	mockRepo.On("Update", ctx, "e1", update).Return(stored, nil)

	expense, err := service.Update(ctx, "e1", update)

	assert.NoError(t, err)
	assert.Equal(t, stored, expense)
	mockRepo.AssertExpectations(t)
}

func TestExpenseService_Create_CarriesMetadata(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Expense")).Return(nil)

	expense, err := service.Create(ctx, CreateExpenseInput{
		UserID:      "user123",
		ExpenseDate: "2024-03-01",
		Amount:      42.50,
		Metadata:    map[string]string{"receipt_kind": "paper"},
	})

	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"receipt_kind": "paper"}, expense.Metadata)
}

func TestExpenseService_Update_MetadataOnlyIsNotEmpty(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	update := domain.ExpenseUpdate{
		Metadata: &map[string]string{"receipt_kind": "digital"},
	}
	stored := &domain.Expense{ID: "e1", Metadata: map[string]string{"receipt_kind": "digital"}}
	mockRepo.On("Update", ctx, "e1", update).Return(stored, nil)

	expense, err := service.Update(ctx, "e1", update)

	assert.NoError(t, err)
	assert.Equal(t, stored, expense)
	mockRepo.AssertExpectations(t)
}

func TestExpenseService_Get_PropagatesNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo, zap.NewNop())

	mockRepo.On("GetByID", ctx, "missing").Return(nil, apperrors.NewNotFoundError("expense"))

	_, err := service.Get(ctx, "missing")

	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	mockRepo.AssertExpectations(t)
}
