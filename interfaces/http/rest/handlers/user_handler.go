package handlers

import (
	"net/http"

	"fintrack-backend/application/services"
	"fintrack-backend/domain"
	"fintrack-backend/pkg/auth"
	"fintrack-backend/pkg/common"
	"fintrack-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpdateProfileRequest is the payload for a partial profile update.
type UpdateProfileRequest struct {
	Name      *string            `json:"name" validate:"omitempty,min=1,max=100"`
	AvatarKey *string            `json:"avatar_key"`
	Metadata  *map[string]string `json:"metadata"`
}

// UserHandler serves the profile endpoints.
type UserHandler struct {
	users  *services.UserService
	logger *zap.Logger
}

// NewUserHandler creates a user handler.
func NewUserHandler(users *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// resolveUserID maps the {userID} path segment, with "me" standing in for
// the authenticated caller.
func resolveUserID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "userID")
	if id != "me" {
		return id, nil
	}
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		return "", err
	}
	return user.UserID, nil
}

// Lookup handles GET /api/v1/users, resolving a profile by email.
func (h *UserHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		common.RespondError(w, http.StatusBadRequest, "INVALID_QUERY", "email query parameter is required")
		return
	}

	profile, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "", profile)
}

// Get handles GET /api/v1/users/{userID}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := resolveUserID(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	profile, err := h.users.Get(r.Context(), id)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "", profile)
}

// Update handles PUT /api/v1/users/{userID}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := resolveUserID(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var req UpdateProfileRequest
	if err := common.ParseJSONBody(r, &req, maxJSONBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	profile, err := h.users.Update(r.Context(), id, domain.UserProfileUpdate{
		Name:      req.Name,
		AvatarKey: req.AvatarKey,
		Metadata:  req.Metadata,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "profile updated", profile)
}

// Delete handles DELETE /api/v1/users/{userID}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := resolveUserID(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "profile deleted", map[string]string{"id": id})
}
