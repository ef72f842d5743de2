package models

import (
	"strings"
	"time"
)

// Author is the public summary of a post's author
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Post represents a blog post
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=100"`
	Content   string `json:"content" validate:"required,notblank"`
	Published *bool  `json:"published"`
}

// Normalize trims the title
func (r *CreatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

// UpdatePostRequest represents the request body for a partial post update
type UpdatePostRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=100"`
	Content   *string `json:"content" validate:"omitempty,notblank"`
	Published *bool   `json:"published"`
}

// IsEmpty reports whether no field was provided
func (r *UpdatePostRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Published == nil
}

// Normalize trims the title when present
func (r *UpdatePostRequest) Normalize() {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
}
