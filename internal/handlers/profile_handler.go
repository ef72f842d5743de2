package handlers

import (
	"context"
	"net/http"

	"github.com/blogspace/backend/internal/models"
	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/auth/middleware"
	"github.com/blogspace/backend/libs/handlers"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileService is the interface that wraps methods for the caller's own account
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error)
	GetProfileWithPosts(ctx context.Context, userID string) (*models.UserWithPosts, error)
	// Method UpdateProfile changes name and/or password. The request is expected to be validated.
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error)
	// Method DeleteAccount removes the user and every post they wrote.
	DeleteAccount(ctx context.Context, userID string) error
}

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	handlers.BaseHandler
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    handlers.BaseHandler{Logger: logger},
		profileService: profileService,
	}
}

// RegisterRoutes registers all profile handler routes
func (h *ProfileHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/user", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/profile", h.GetProfile)
		r.Get("/profilePosts", h.GetProfilePosts)
		r.Put("/profile", h.UpdateProfile)
		r.Delete("/", h.DeleteAccount)
	})
}

// GetProfile handles GET /user/profile
// @Summary Get profile
// @Description Current user and all of their posts
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ProfileResponse
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Router /user/profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, r, apperrors.ErrAuthRequired)
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, profile)
}

// GetProfilePosts handles GET /user/profilePosts
// @Summary Get profile with posts
// @Description Current user with posts embedded, newest first
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserWithPosts
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Router /user/profilePosts [get]
func (h *ProfileHandler) GetProfilePosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, r, apperrors.ErrAuthRequired)
		return
	}

	profile, err := h.profileService.GetProfileWithPosts(r.Context(), userID)
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /user/profile
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Router /user/profile [put]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, r, apperrors.ErrAuthRequired)
		return
	}

	var req models.UpdateProfileRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.RespondError(w, r, err)
		return
	}

	user, err := h.profileService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// DeleteAccount handles DELETE /user
// @Summary Delete account
// @Description Delete the current user and all of their posts
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Router /user [delete]
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, r, apperrors.ErrAuthRequired)
		return
	}

	if err := h.profileService.DeleteAccount(r.Context(), userID); err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondMessage(w, http.StatusOK, "Account deleted successfully")
}
