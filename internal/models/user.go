package models

import (
	"strings"
	"time"

	"github.com/blogspace/backend/libs/auth/service"
)

// Role is the privilege level of a user
type Role string

// Role values
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PostCount carries aggregated counters for admin listings
type PostCount struct {
	Posts int `json:"posts"`
}

// UserListItem represents a user in the admin list
type UserListItem struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	Count     PostCount `json:"_count"`
}

// UserWithPosts is a user with all of their posts embedded
type UserWithPosts struct {
	User
	Posts []Post `json:"posts"`
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

// Normalize trims the name and canonicalizes the email
func (r *SignupRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

// SigninRequest represents the request body for signin
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Normalize canonicalizes the email
func (r *SigninRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// AuthResponse is returned by signup and signin
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// VerifyResponse is returned by the token verification endpoint
type VerifyResponse struct {
	User *service.Identity `json:"user"`
}

// ProfileResponse represents the current user's profile with their posts
type ProfileResponse struct {
	User  *User  `json:"user"`
	Posts []Post `json:"posts"`
}

// UpdateProfileRequest represents the request body for updating the profile.
// Both fields are optional but at least one must be present.
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
}

// IsEmpty reports whether no field was provided
func (r *UpdateProfileRequest) IsEmpty() bool {
	return r.Name == nil && r.Password == nil
}

// Normalize trims the name when present
func (r *UpdateProfileRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
}

// UpdateRoleRequest represents the request body for changing a user's role
type UpdateRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=USER ADMIN"`
}
