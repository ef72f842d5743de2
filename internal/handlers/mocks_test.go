package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/blogspace/backend/internal/models"
	"github.com/blogspace/backend/libs/auth/middleware"
	"github.com/blogspace/backend/libs/auth/service"
	"github.com/blogspace/backend/libs/validation"
)

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	resp   *models.AuthResponse
	err    error
	called bool
}

func (m *mockAuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	m.called = true
	return m.resp, m.err
}

func (m *mockAuthService) Signin(ctx context.Context, req *models.SigninRequest) (*models.AuthResponse, error) {
	m.called = true
	return m.resp, m.err
}

// mockBlogService is a mock implementation of BlogService
type mockBlogService struct {
	posts      []models.Post
	post       *models.Post
	err        error
	lastUserID string
	lastPostID string
}

func (m *mockBlogService) ListPublished(ctx context.Context) ([]models.Post, error) {
	return m.posts, m.err
}

func (m *mockBlogService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	m.lastPostID = postID
	return m.post, m.err
}

func (m *mockBlogService) CreatePost(ctx context.Context, author *service.Identity, req *models.CreatePostRequest) (*models.Post, error) {
	m.lastUserID = author.ID
	if m.err != nil {
		return nil, m.err
	}
	return &models.Post{ID: "post-1", Title: req.Title, Content: req.Content, AuthorID: author.ID}, nil
}

func (m *mockBlogService) UpdatePost(ctx context.Context, userID, postID string, req *models.UpdatePostRequest) (*models.Post, error) {
	m.lastUserID = userID
	m.lastPostID = postID
	if m.err != nil {
		return nil, m.err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return m.post, nil
}

func (m *mockBlogService) DeletePost(ctx context.Context, userID, postID string) error {
	m.lastUserID = userID
	m.lastPostID = postID
	return m.err
}

// mockProfileService is a mock implementation of ProfileService
type mockProfileService struct {
	profile   *models.ProfileResponse
	withPosts *models.UserWithPosts
	user      *models.User
	err       error
	called    bool
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	m.called = true
	return m.profile, m.err
}

func (m *mockProfileService) GetProfileWithPosts(ctx context.Context, userID string) (*models.UserWithPosts, error) {
	m.called = true
	return m.withPosts, m.err
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	m.called = true
	return m.user, m.err
}

func (m *mockProfileService) DeleteAccount(ctx context.Context, userID string) error {
	m.called = true
	return m.err
}

// mockAdminService is a mock implementation of AdminService
type mockAdminService struct {
	users      []models.UserListItem
	user       *models.UserListItem
	err        error
	lastActor  string
	lastUserID string
	lastRole   models.Role
}

func (m *mockAdminService) ListUsers(ctx context.Context) ([]models.UserListItem, error) {
	return m.users, m.err
}

func (m *mockAdminService) GetUser(ctx context.Context, userID string) (*models.UserListItem, error) {
	m.lastUserID = userID
	return m.user, m.err
}

func (m *mockAdminService) UpdateUserRole(ctx context.Context, actorID, userID string, role models.Role) (*models.UserListItem, error) {
	m.lastActor = actorID
	m.lastUserID = userID
	m.lastRole = role
	return m.user, m.err
}

func (m *mockAdminService) DeleteUser(ctx context.Context, actorID, userID string) error {
	m.lastActor = actorID
	m.lastUserID = userID
	return m.err
}

// mockPinger is a mock implementation of Pinger
type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

// passThrough stands in for the authentication middleware in handler tests
func passThrough(next http.Handler) http.Handler {
	return next
}

// newRequest builds a request with an optional JSON body and an optional authenticated identity
func newRequest(method, target, body string, identity *service.Identity) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	return req
}
