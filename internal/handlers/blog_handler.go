package handlers

import (
	"context"
	"net/http"

	"github.com/blogspace/backend/internal/models"
	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/auth/middleware"
	"github.com/blogspace/backend/libs/auth/service"
	"github.com/blogspace/backend/libs/handlers"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BlogService is the interface that wraps methods for blog post operations
type BlogService interface {
	ListPublished(ctx context.Context) ([]models.Post, error)
	// Method GetPost returns a post by ID, published or not.
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	CreatePost(ctx context.Context, author *service.Identity, req *models.CreatePostRequest) (*models.Post, error)
	// Method UpdatePost validates req itself, after the post lookup and the ownership check.
	UpdatePost(ctx context.Context, userID, postID string, req *models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
}

// BlogHandler handles blog post HTTP requests
type BlogHandler struct {
	handlers.BaseHandler
	blogService BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		BaseHandler: handlers.BaseHandler{Logger: logger},
		blogService: blogService,
	}
}

// RegisterRoutes registers all blog handler routes
func (h *BlogHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/blog/posts", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Get("/{id}", h.GetPost)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.CreatePost)
			r.Put("/{id}", h.UpdatePost)
			r.Delete("/{id}", h.DeletePost)
		})
	})
}

// ListPosts handles GET /blog/posts
// @Summary List published posts
// @Description Published posts, newest first, with author id and name
// @Tags blog
// @Produce json
// @Success 200 {array} models.Post
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /blog/posts [get]
func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogService.ListPublished(r.Context())
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /blog/posts/{id}
// @Summary Get post
// @Tags blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /blog/posts/{id} [get]
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogService.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, post)
}

// CreatePost handles POST /blog/posts
// @Summary Create post
// @Description Create a post owned by the caller. Published defaults to true.
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreatePostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /blog/posts [post]
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, r, apperrors.ErrAuthRequired)
		return
	}

	var req models.CreatePostRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.RespondError(w, r, err)
		return
	}

	post, err := h.blogService.CreatePost(r.Context(), identity, &req)
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, post)
}

// UpdatePost handles PUT /blog/posts/{id}
// @Summary Update post
// @Description Partially update a post. Only the author may update it.
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body models.UpdatePostRequest true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Failure 403 {object} handlers.ErrorResponse "Not authorized"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /blog/posts/{id} [put]
func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, r, apperrors.ErrAuthRequired)
		return
	}

	var req models.UpdatePostRequest
	if err := h.Decode(r, &req); err != nil {
		h.RespondError(w, r, err)
		return
	}

	post, err := h.blogService.UpdatePost(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /blog/posts/{id}
// @Summary Delete post
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Failure 403 {object} handlers.ErrorResponse "Not authorized"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /blog/posts/{id} [delete]
func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, r, apperrors.ErrAuthRequired)
		return
	}

	if err := h.blogService.DeletePost(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondMessage(w, http.StatusOK, "Post deleted successfully")
}
