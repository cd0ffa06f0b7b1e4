package handlers

import (
	"net/http"

	"fintrack-backend/application/services"
	"fintrack-backend/domain"
	"fintrack-backend/pkg/common"
	"fintrack-backend/pkg/utils"

	"go.uber.org/zap"
)

// SendNotificationRequest is the payload for publishing a notification.
// Without recipients, every account in the user pool is subscribed.
type SendNotificationRequest struct {
	Subject    string             `json:"subject" validate:"required,min=1,max=200"`
	Data       map[string]string  `json:"data"`
	Recipients []domain.Recipient `json:"recipients"`
}

// NotificationHandler serves the notification endpoints.
type NotificationHandler struct {
	notifications *services.NotificationService
	logger        *zap.Logger
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(notifications *services.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// Send handles POST /api/v1/notifications/send.
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendNotificationRequest
	if err := common.ParseJSONBody(r, &req, maxJSONBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.notifications.Send(r.Context(), req.Subject, req.Data, req.Recipients)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "notification dispatched", result)
}

// Stats handles GET /api/v1/notifications/stats.
func (h *NotificationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.notifications.Stats(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "", stats)
}
