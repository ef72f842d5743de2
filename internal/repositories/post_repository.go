package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blogspace/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// postRepository implements PostRepository
type postRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sql.DB, logger *zap.Logger) *postRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

const postWithAuthorQuery = `
	SELECT p.id, p.title, p.content, p.published, p.author_id, p.created_at, p.updated_at, u.id, u.name
	FROM posts p
	JOIN users u ON u.id = p.author_id
`

// Create inserts a new post into the database
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
		INSERT INTO posts (id, title, content, published, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Published, post.AuthorID, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create post", zap.Error(err))
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by ID together with its author summary
func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := postWithAuthorQuery + `WHERE p.id = ?`

	post, err := scanPostWithAuthor(r.db.QueryRowContext(ctx, query, postID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get post", zap.Error(err), zap.String("postID", postID))
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// ListPublished retrieves published posts, newest first
func (r *postRepository) ListPublished(ctx context.Context) ([]models.Post, error) {
	query := postWithAuthorQuery + `
		WHERE p.published = TRUE
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list published posts", zap.Error(err))
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// ListByAuthor retrieves every post of an author, published or not, newest first
func (r *postRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	query := `
		SELECT id, title, content, published, author_id, created_at, updated_at
		FROM posts
		WHERE author_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		r.logger.Error("failed to list posts by author", zap.Error(err))
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.Published,
			&post.AuthorID,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// Update writes the editable fields of post and refreshes its UpdatedAt
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE posts
		SET title = ?, content = ?, published = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.Published, post.UpdatedAt, post.ID)
	if err != nil {
		r.logger.Error("failed to update post", zap.Error(err))
		return fmt.Errorf("failed to update post: %w", err)
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

// Delete removes a post by ID
func (r *postRepository) Delete(ctx context.Context, postID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, postID)
	if err != nil {
		r.logger.Error("failed to delete post", zap.Error(err))
		return fmt.Errorf("failed to delete post: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostWithAuthor(row rowScanner) (*models.Post, error) {
	post := &models.Post{Author: &models.Author{}}
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Published,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Author.ID,
		&post.Author.Name,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}
