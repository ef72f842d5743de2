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

// AdminService is the interface that wraps methods for admin operations
type AdminService interface {
	// Method ListUsers returns every user with their post count.
	ListUsers(ctx context.Context) ([]models.UserListItem, error)
	// Method GetUser returns one user with their post count.
	//
	// If user not found, a NotFound error will be returned together with nil.
	GetUser(ctx context.Context, userID string) (*models.UserListItem, error)
	// Method UpdateUserRole changes the role of userID.
	//
	// "actorID" is the admin performing the change; changing one's own role is rejected.
	UpdateUserRole(ctx context.Context, actorID, userID string, role models.Role) (*models.UserListItem, error)
	// Method DeleteUser deletes userID and their posts.
	//
	// "actorID" is the admin performing the deletion; deleting one's own account is rejected.
	DeleteUser(ctx context.Context, actorID, userID string) error
}

// AdminHandler handles admin-related HTTP requests
type AdminHandler struct {
	handlers.BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  handlers.BaseHandler{Logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes registers all admin handler routes.
// Note: the router is expected to apply authentication and the ADMIN gate.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/users", h.ListUsers)
		r.Get("/users/{id}", h.GetUser)
		r.Put("/users/{id}/role", h.UpdateUserRole)
		r.Delete("/users/{id}", h.DeleteUser)
	})
}

// ListUsers handles GET /admin/users
// @Summary List users
// @Description Every user with creation date and post count
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserListItem
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Failure 403 {object} handlers.ErrorResponse "Admin access required"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// GetUser handles GET /admin/users/{id}
// @Summary Get user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.UserListItem
// @Failure 403 {object} handlers.ErrorResponse "Admin access required"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.adminService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// UpdateUserRole handles PUT /admin/users/{id}/role
// @Summary Change user role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body models.UpdateRoleRequest true "New role"
// @Success 200 {object} models.UserListItem
// @Failure 400 {object} handlers.ErrorResponse "Validation error or own role"
// @Failure 403 {object} handlers.ErrorResponse "Admin access required"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /admin/users/{id}/role [put]
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, r, apperrors.ErrAuthRequired)
		return
	}

	var req models.UpdateRoleRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.RespondError(w, r, err)
		return
	}

	user, err := h.adminService.UpdateUserRole(r.Context(), actorID, chi.URLParam(r, "id"), req.Role)
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/{id}
// @Summary Delete user
// @Description Delete a user and all of their posts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Cannot delete your own admin account"
// @Failure 403 {object} handlers.ErrorResponse "Admin access required"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, r, apperrors.ErrAuthRequired)
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondMessage(w, http.StatusOK, "User deleted successfully")
}
