package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blogspace/backend/internal/models"
	"github.com/blogspace/backend/internal/repositories"
	"github.com/google/uuid"
)

// mockUserRepository is an in-memory implementation of UserRepository
type mockUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
	posts *mockPostRepository
	err   error
}

func newMockUserRepository(posts *mockPostRepository) *mockUserRepository {
	return &mockUserRepository{users: map[string]*models.User{}, posts: posts}
}

func (m *mockUserRepository) add(user models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	m.users[user.ID] = &user
	return &user
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err == repositories.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *mockUserRepository) Update(ctx context.Context, userID string, name, passwordHash *string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	if name != nil {
		user.Name = *name
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	return nil
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Role = role
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, userID string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.users, userID)
	if m.posts != nil {
		m.posts.deleteByAuthor(userID)
	}
	return nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]models.UserListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	sort.Strings(ids)

	items := []models.UserListItem{}
	for _, id := range ids {
		item, err := m.GetListItem(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (m *mockUserRepository) GetListItem(ctx context.Context, userID string) (*models.UserListItem, error) {
	user, err := m.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	count := 0
	if m.posts != nil {
		count = m.posts.countByAuthor(userID)
	}
	return &models.UserListItem{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		Count:     models.PostCount{Posts: count},
	}, nil
}

// mockPostRepository is an in-memory implementation of PostRepository
type mockPostRepository struct {
	mu    sync.Mutex
	posts map[string]*models.Post
	err   error
}

func newMockPostRepository() *mockPostRepository {
	return &mockPostRepository{posts: map[string]*models.Post{}}
}

func (m *mockPostRepository) add(post models.Post) *models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	m.posts[post.ID] = &post
	return &post
}

func (m *mockPostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[postID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *mockPostRepository) ListPublished(ctx context.Context) ([]models.Post, error) {
	return m.list(func(p *models.Post) bool { return p.Published })
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return m.list(func(p *models.Post) bool { return p.AuthorID == authorID })
}

func (m *mockPostRepository) list(keep func(*models.Post) bool) ([]models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	posts := []models.Post{}
	for _, post := range m.posts {
		if keep(post) {
			posts = append(posts, *post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (m *mockPostRepository) Update(ctx context.Context, post *models.Post) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[post.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, postID string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[postID]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.posts, postID)
	return nil
}

func (m *mockPostRepository) deleteByAuthor(authorID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, post := range m.posts {
		if post.AuthorID == authorID {
			delete(m.posts, id)
		}
	}
}

func (m *mockPostRepository) countByAuthor(authorID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, post := range m.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count
}
