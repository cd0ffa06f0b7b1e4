package services

import (
	"context"

	"fintrack-backend/application/ports"
	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"

	"go.uber.org/zap"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// CreateExpenseInput carries a validated create request into the service.
type CreateExpenseInput struct {
	UserID      string
	ExpenseDate string
	Amount      float64
	Category    string
	Merchant    string
	Note        string
	Tags        []string
	Attachments []string
	Metadata    map[string]string
}

// ListExpensesFilter selects one of the listing paths: by user, by
// category, or everything. UserID wins when both are set.
type ListExpensesFilter struct {
	UserID   string
	Category string
	Limit    int32
}

// ExpenseService exposes expense CRUD over the expense repository.
type ExpenseService struct {
	expenses ports.ExpenseRepository
	logger   *zap.Logger
}

// NewExpenseService creates an expense service.
func NewExpenseService(expenses ports.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{expenses: expenses, logger: logger}
}

// Create stamps and stores a new expense record.
func (s *ExpenseService) Create(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive")
	}

	expense := domain.NewExpense(input.UserID, input.ExpenseDate, input.Amount)
	expense.Category = input.Category
	expense.Merchant = input.Merchant
	expense.Note = input.Note
	expense.Tags = input.Tags
	expense.Attachments = input.Attachments
	expense.Metadata = input.Metadata

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense created",
		zap.String("expenseID", expense.ID),
		zap.String("userID", expense.UserID),
		zap.Float64("amount", expense.Amount),
	)
	return expense, nil
}

// Get fetches an expense by id.
func (s *ExpenseService) Get(ctx context.Context, id string) (*domain.Expense, error) {
	return s.expenses.GetByID(ctx, id)
}

// List returns expenses under the filter, clamping the limit to 1..500.
func (s *ExpenseService) List(ctx context.Context, filter ListExpensesFilter) ([]domain.Expense, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	switch {
	case filter.UserID != "":
		return s.expenses.ListByUser(ctx, filter.UserID, limit)
	case filter.Category != "":
		return s.expenses.ListByCategory(ctx, filter.Category, limit)
	default:
		return s.expenses.ListAll(ctx, limit)
	}
}

// Update applies a partial update and returns the stored record.
func (s *ExpenseService) Update(ctx context.Context, id string, update domain.ExpenseUpdate) (*domain.Expense, error) {
	if update.IsEmpty() {
		return nil, apperrors.NewValidationError("no update data provided").WithCode("NO_DATA")
	}
	if update.Amount != nil && *update.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive")
	}
	return s.expenses.Update(ctx, id, update)
}

// Delete removes an expense by id.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	return s.expenses.Delete(ctx, id)
}
