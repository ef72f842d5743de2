package handlers

import (
	"context"
	"net/http"

	"github.com/blogspace/backend/internal/models"
	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/auth/middleware"
	"github.com/blogspace/backend/libs/handlers"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication
type AuthService interface {
	// Method Signup registers a new user and returns a session token with the created user.
	//
	// If the email is already taken, a Conflict error will be returned.
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	// Method Signin checks credentials and returns a session token with the user.
	//
	// Unknown email and wrong password both return apperrors.ErrInvalidCredentials.
	Signin(ctx context.Context, req *models.SigninRequest) (*models.AuthResponse, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	handlers.BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: handlers.BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes.
// rateLimit guards the credential endpoints, authMiddleware guards verify.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware, rateLimit func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/signup", h.Signup)
			r.Post("/register", h.Signup)
			r.Post("/signin", h.Signin)
			r.Post("/login", h.Signin)
		})
		r.With(authMiddleware).Get("/verify", h.Verify)
	})
}

// Signup handles POST /auth/signup
// @Summary Register a new user
// @Description Create a USER account and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup request"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation error or user already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.RespondError(w, r, err)
		return
	}

	resp, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// Signin handles POST /auth/signin
// @Summary Sign in
// @Description Exchange email and password for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SigninRequest true "Signin request"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation error or invalid credentials"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req models.SigninRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.RespondError(w, r, err)
		return
	}

	resp, err := h.authService.Signin(r.Context(), &req)
	if err != nil {
		h.RespondError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// Verify handles GET /auth/verify
// @Summary Verify session token
// @Description Return the identity behind the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.VerifyResponse
// @Failure 401 {object} handlers.ErrorResponse "Authentication required, invalid token or user not found"
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, r, apperrors.ErrAuthRequired)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.VerifyResponse{User: identity})
}
