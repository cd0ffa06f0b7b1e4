// Package ports defines the interfaces the application layer depends on.
// Infrastructure packages provide the managed-service implementations.
package ports

import (
	"context"

	"fintrack-backend/domain"
)

// UserRepository persists user profile rows.
type UserRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	Update(ctx context.Context, id string, update domain.UserProfileUpdate) (*domain.UserProfile, error)
	Delete(ctx context.Context, id string) error

	// Ping probes table reachability for readiness checks.
	Ping(ctx context.Context) error
}

// ExpenseRepository persists expense records.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	ListByUser(ctx context.Context, userID string, limit int32) ([]domain.Expense, error)
	ListByCategory(ctx context.Context, category string, limit int32) ([]domain.Expense, error)
	ListAll(ctx context.Context, limit int32) ([]domain.Expense, error)
	Update(ctx context.Context, id string, update domain.ExpenseUpdate) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error

	// Ping probes table reachability for readiness checks.
	Ping(ctx context.Context) error
}
