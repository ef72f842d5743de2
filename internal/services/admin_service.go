package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/blogspace/backend/internal/models"
	"github.com/blogspace/backend/internal/repositories"
	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/auth/service"
	"go.uber.org/zap"
)

// adminService implements AdminService
type adminService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo UserRepository, logger *zap.Logger) *adminService {
	return &adminService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns every user with their post count
func (s *adminService) ListUsers(ctx context.Context) ([]models.UserListItem, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns one user with their post count
func (s *adminService) GetUser(ctx context.Context, userID string) (*models.UserListItem, error) {
	user, err := s.userRepo.GetListItem(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUserRole changes the role of another user
func (s *adminService) UpdateUserRole(ctx context.Context, actorID, userID string, role models.Role) (*models.UserListItem, error) {
	if actorID == userID {
		return nil, apperrors.BadRequest("Cannot change your own role")
	}
	if !role.Valid() {
		return nil, apperrors.Validation(apperrors.FieldError{Field: "role", Message: "Role must be one of: USER, ADMIN"})
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.logger.Info("user role changed",
		zap.String("actorID", actorID),
		zap.String("userID", userID),
		zap.String("role", string(role)),
	)
	return s.GetUser(ctx, userID)
}

// DeleteUser removes another user and all of their posts
func (s *adminService) DeleteUser(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return apperrors.BadRequest("Cannot delete your own admin account")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted by admin", zap.String("actorID", actorID), zap.String("userID", userID))
	return nil
}

// EnsureAdmin makes sure an account with email exists and holds the ADMIN role.
// A missing account is created with password; an existing one keeps its password.
func (s *adminService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		passwordHash, err := service.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := &models.User{
			Email:        email,
			PasswordHash: passwordHash,
			Name:         name,
			Role:         models.RoleAdmin,
		}
		if err := s.userRepo.Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		s.logger.Info("admin account created", zap.String("userID", admin.ID))
		return nil
	case err != nil:
		return fmt.Errorf("failed to get admin: %w", err)
	case user.Role == models.RoleAdmin:
		return nil
	}

	if err := s.userRepo.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to promote admin: %w", err)
	}
	s.logger.Info("account promoted to admin", zap.String("userID", user.ID))
	return nil
}
