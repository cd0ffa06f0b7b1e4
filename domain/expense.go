package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single expense record as persisted in the expenses table.
type Expense struct {
	ID          string            `json:"id" dynamodbav:"id"`
	UserID      string            `json:"user_id" dynamodbav:"user_id"`
	ExpenseDate string            `json:"expense_date" dynamodbav:"expense_date"`
	Amount      float64           `json:"amount" dynamodbav:"amount"`
	Category    string            `json:"category,omitempty" dynamodbav:"category,omitempty"`
	Merchant    string            `json:"merchant,omitempty" dynamodbav:"merchant,omitempty"`
	Note        string            `json:"note,omitempty" dynamodbav:"note,omitempty"`
	Tags        []string          `json:"tags,omitempty" dynamodbav:"tags,omitempty"`
	Attachments []string          `json:"attachments,omitempty" dynamodbav:"attachments,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
	CreatedAt   string            `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   string            `json:"updated_at" dynamodbav:"updated_at"`
}

// ExpenseUpdate carries a partial update. Nil fields are left untouched.
type ExpenseUpdate struct {
	ExpenseDate *string            `json:"expense_date,omitempty"`
	Amount      *float64           `json:"amount,omitempty"`
	Category    *string            `json:"category,omitempty"`
	Merchant    *string            `json:"merchant,omitempty"`
	Note        *string            `json:"note,omitempty"`
	Tags        *[]string          `json:"tags,omitempty"`
	Attachments *[]string          `json:"attachments,omitempty"`
	Metadata    *map[string]string `json:"metadata,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u ExpenseUpdate) IsEmpty() bool {
	return u.ExpenseDate == nil && u.Amount == nil && u.Category == nil &&
		u.Merchant == nil && u.Note == nil && u.Tags == nil &&
		u.Attachments == nil && u.Metadata == nil
}

// NewExpense stamps a fresh expense with an id and creation timestamps.
func NewExpense(userID, expenseDate string, amount float64) *Expense {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Expense{
		ID:          uuid.New().String(),
		UserID:      userID,
		ExpenseDate: expenseDate,
		Amount:      amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
