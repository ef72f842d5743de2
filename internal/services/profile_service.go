package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blogspace/backend/internal/models"
	"github.com/blogspace/backend/internal/repositories"
	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/auth/service"
	"go.uber.org/zap"
)

var errUserNotFound = apperrors.NotFound("User not found")

// profileService implements ProfileService
type profileService struct {
	userRepo UserRepository
	postRepo PostRepository
	logger   *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo UserRepository, postRepo PostRepository, logger *zap.Logger) *profileService {
	return &profileService{
		userRepo: userRepo,
		postRepo: postRepo,
		logger:   logger,
	}
}

// GetProfile returns the user together with all of their posts
func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	user, posts, err := s.userWithPosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.ProfileResponse{User: user, Posts: posts}, nil
}

// GetProfileWithPosts returns the user with posts embedded in the user object
func (s *profileService) GetProfileWithPosts(ctx context.Context, userID string) (*models.UserWithPosts, error) {
	user, posts, err := s.userWithPosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserWithPosts{User: *user, Posts: posts}, nil
}

func (s *profileService) userWithPosts(ctx context.Context, userID string) (*models.User, []models.Post, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return user, posts, nil
}

// UpdateProfile changes the name and/or password of the user
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	var name, passwordHash *string

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		name = &trimmed
	}
	if req.Password != nil {
		hash, err := service.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = &hash
	}

	if err := s.userRepo.Update(ctx, userID, name, passwordHash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.getUser(ctx, userID)
}

// DeleteAccount removes the user and all of their posts
func (s *profileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errUserNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("account deleted", zap.String("userID", userID))
	return nil
}

func (s *profileService) getUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
