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
	"github.com/blogspace/backend/libs/validation"
	"go.uber.org/zap"
)

var (
	errPostNotFound  = apperrors.NotFound("Post not found")
	errNotPostAuthor = apperrors.Forbidden("Not authorized")
)

// blogService implements BlogService
type blogService struct {
	postRepo PostRepository
	logger   *zap.Logger
}

// NewBlogService creates a new blog service
func NewBlogService(postRepo PostRepository, logger *zap.Logger) *blogService {
	return &blogService{
		postRepo: postRepo,
		logger:   logger,
	}
}

// ListPublished returns every published post, newest first
func (s *blogService) ListPublished(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns a single post by ID
func (s *blogService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// CreatePost stores a new post owned by author. Posts are published unless stated otherwise.
func (s *blogService) CreatePost(ctx context.Context, author *service.Identity, req *models.CreatePostRequest) (*models.Post, error) {
	published := true
	if req.Published != nil {
		published = *req.Published
	}

	post := &models.Post{
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Published: published,
		AuthorID:  author.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	post.Author = &models.Author{ID: author.ID, Name: author.Name, Email: author.Email}
	s.logger.Info("post created", zap.String("postID", post.ID), zap.String("authorID", author.ID))
	return post, nil
}

// UpdatePost applies the provided fields to a post owned by userID.
// A missing post is reported before ownership, ownership before body validation.
func (s *blogService) UpdatePost(ctx context.Context, userID, postID string, req *models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// DeletePost removes a post owned by userID
func (s *blogService) DeletePost(ctx context.Context, userID, postID string) error {
	if _, err := s.ownedPost(ctx, userID, postID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errPostNotFound
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", zap.String("postID", postID), zap.String("userID", userID))
	return nil
}

func (s *blogService) ownedPost(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		s.logger.Warn("post modification by non-author", zap.String("postID", postID), zap.String("userID", userID))
		return nil, errNotPostAuthor
	}
	return post, nil
}
