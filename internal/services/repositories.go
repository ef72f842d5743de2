package services

import (
	"context"

	"github.com/blogspace/backend/internal/models"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// If the email is already taken, repositories.ErrDuplicate will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, repositories.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// Method GetByEmail retrieves a user by email.
	//
	// If user with such email does not exist, repositories.ErrNotFound will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method Update changes the name and/or password hash. Nil values are left untouched.
	Update(ctx context.Context, userID string, name, passwordHash *string) error
	// Method UpdateRole sets the role of a user.
	UpdateRole(ctx context.Context, userID string, role models.Role) error
	// Method Delete removes a user together with all of their posts.
	//
	// If user with such ID does not exist, repositories.ErrNotFound will be returned.
	Delete(ctx context.Context, userID string) error
	// Method List retrieves all users with post counts.
	List(ctx context.Context) ([]models.UserListItem, error)
	// Method GetListItem retrieves one user with post count.
	GetListItem(ctx context.Context, userID string) (*models.UserListItem, error)
}

// PostRepository is the interface that wraps methods for Post table data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// Method GetByID retrieves a post with its author summary.
	//
	// If post with such ID does not exist, repositories.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListPublished(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}
