package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogspace/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userRepository implements UserRepository
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database.
// ID and timestamps are assigned here when empty.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicate
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	return r.getOne(ctx, query, userID)
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users
		WHERE email = ?
	`

	return r.getOne(ctx, query, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user exists with the given email
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		r.logger.Error("failed to check if email exists", zap.Error(err))
		return false, fmt.Errorf("failed to check if email exists: %w", err)
	}

	return exists, nil
}

// Update changes the provided profile fields; nil fields are left untouched
func (r *userRepository) Update(ctx context.Context, userID string, name, passwordHash *string) error {
	var setParts []string
	var args []any

	if name != nil {
		setParts = append(setParts, "name = ?")
		args = append(args, *name)
	}
	if passwordHash != nil {
		setParts = append(setParts, "password_hash = ?")
		args = append(args, *passwordHash)
	}
	if len(setParts) == 0 {
		return nil
	}

	setParts = append(setParts, "updated_at = ?")
	args = append(args, time.Now().UTC(), userID)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(setParts, ", "))
	return r.execOne(ctx, "update user", query, args...)
}

// UpdateRole sets the role of a user
func (r *userRepository) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	query := `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`
	return r.execOne(ctx, "update user role", query, role, time.Now().UTC(), userID)
}

func (r *userRepository) execOne(ctx context.Context, action, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to "+action, zap.Error(err))
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a user and all of their posts in one transaction
func (r *userRepository) Delete(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE author_id = ?`, userID); err != nil {
		r.logger.Error("failed to delete user posts", zap.Error(err))
		return fmt.Errorf("failed to delete user posts: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		r.logger.Error("failed to delete user", zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const userListQuery = `
	SELECT u.id, u.email, u.name, u.role, u.created_at, COUNT(p.id)
	FROM users u
	LEFT JOIN posts p ON p.author_id = u.id
`

// List retrieves all users with their post counts, newest first
func (r *userRepository) List(ctx context.Context) ([]models.UserListItem, error) {
	query := userListQuery + `
		GROUP BY u.id, u.email, u.name, u.role, u.created_at
		ORDER BY u.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.UserListItem{}
	for rows.Next() {
		var item models.UserListItem
		if err := rows.Scan(&item.ID, &item.Email, &item.Name, &item.Role, &item.CreatedAt, &item.Count.Posts); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// GetListItem retrieves one user with their post count
func (r *userRepository) GetListItem(ctx context.Context, userID string) (*models.UserListItem, error) {
	query := userListQuery + `
		WHERE u.id = ?
		GROUP BY u.id, u.email, u.name, u.role, u.created_at
	`

	item := &models.UserListItem{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&item.ID, &item.Email, &item.Name, &item.Role, &item.CreatedAt, &item.Count.Posts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user list item", zap.Error(err))
		return nil, fmt.Errorf("failed to get user list item: %w", err)
	}

	return item, nil
}
