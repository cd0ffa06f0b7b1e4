package handlers

import (
	"net/http"
	"strconv"

	"fintrack-backend/application/services"
	"fintrack-backend/domain"
	"fintrack-backend/pkg/auth"
	"fintrack-backend/pkg/common"
	"fintrack-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateExpenseRequest is the payload for creating an expense.
type CreateExpenseRequest struct {
	UserID      string            `json:"user_id"`
	ExpenseDate string            `json:"expense_date" validate:"required"`
	Amount      float64           `json:"amount" validate:"required,gt=0"`
	Category    string            `json:"category" validate:"omitempty,max=100"`
	Merchant    string            `json:"merchant" validate:"omitempty,max=200"`
	Note        string            `json:"note" validate:"omitempty,max=1000"`
	Tags        []string          `json:"tags" validate:"omitempty,dive,max=50"`
	Attachments []string          `json:"attachments"`
	Metadata    map[string]string `json:"metadata"`
}

// UpdateExpenseRequest is the payload for a partial expense update. Absent
// fields are left untouched.
type UpdateExpenseRequest struct {
	ExpenseDate *string            `json:"expense_date"`
	Amount      *float64           `json:"amount" validate:"omitempty,gt=0"`
	Category    *string            `json:"category" validate:"omitempty,max=100"`
	Merchant    *string            `json:"merchant" validate:"omitempty,max=200"`
	Note        *string            `json:"note" validate:"omitempty,max=1000"`
	Tags        *[]string          `json:"tags"`
	Attachments *[]string          `json:"attachments"`
	Metadata    *map[string]string `json:"metadata"`
}

// ExpenseHandler serves the expense CRUD endpoints.
type ExpenseHandler struct {
	expenses *services.ExpenseService
	logger   *zap.Logger
}

// NewExpenseHandler creates an expense handler.
func NewExpenseHandler(expenses *services.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, logger: logger}
}

// Create handles POST /api/v1/expenses. The record is owned by the caller
// unless user_id names someone else explicitly.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := common.ParseJSONBody(r, &req, maxJSONBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if req.UserID == "" {
		user, err := auth.GetUserFromContext(r.Context())
		if err != nil {
			common.RespondAppError(w, err)
			return
		}
		req.UserID = user.UserID
	}

	if _, err := utils.ParseISODate(req.ExpenseDate); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "expense_date must be an ISO 8601 date or timestamp")
		return
	}

	expense, err := h.expenses.Create(r.Context(), services.CreateExpenseInput{
		UserID:      req.UserID,
		ExpenseDate: req.ExpenseDate,
		Amount:      req.Amount,
		Category:    req.Category,
		Merchant:    req.Merchant,
		Note:        req.Note,
		Tags:        req.Tags,
		Attachments: req.Attachments,
		Metadata:    req.Metadata,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, "expense created", expense)
}

// Get handles GET /api/v1/expenses/{expenseID}.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "expenseID")

	expense, err := h.expenses.Get(r.Context(), id)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "", expense)
}

// List handles GET /api/v1/expenses with optional user_id, category and
// limit query parameters.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := services.ListExpensesFilter{
		UserID:   r.URL.Query().Get("user_id"),
		Category: r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || limit < 1 {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a positive integer")
			return
		}
		filter.Limit = int32(limit)
	}

	expenses, err := h.expenses.List(r.Context(), filter)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "", map[string]interface{}{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

// Update handles PUT /api/v1/expenses/{expenseID}.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "expenseID")

	var req UpdateExpenseRequest
	if err := common.ParseJSONBody(r, &req, maxJSONBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if req.ExpenseDate != nil {
		if _, err := utils.ParseISODate(*req.ExpenseDate); err != nil {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "expense_date must be an ISO 8601 date or timestamp")
			return
		}
	}

	expense, err := h.expenses.Update(r.Context(), id, domain.ExpenseUpdate{
		ExpenseDate: req.ExpenseDate,
		Amount:      req.Amount,
		Category:    req.Category,
		Merchant:    req.Merchant,
		Note:        req.Note,
		Tags:        req.Tags,
		Attachments: req.Attachments,
		Metadata:    req.Metadata,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "expense updated", expense)
}

// Delete handles DELETE /api/v1/expenses/{expenseID}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "expenseID")

	if err := h.expenses.Delete(r.Context(), id); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "expense deleted", map[string]string{"id": id})
}
