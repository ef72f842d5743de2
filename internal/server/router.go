// Package server assembles the HTTP router of the blog API
package server

import (
	"net/http"
	"time"

	"github.com/blogspace/backend/internal/handlers"
	"github.com/blogspace/backend/internal/models"
	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/auth/middleware"
	"github.com/blogspace/backend/libs/config"
	sharedHandlers "github.com/blogspace/backend/libs/handlers"
	loggerMiddleware "github.com/blogspace/backend/libs/logger/middleware"
	sharedMiddleware "github.com/blogspace/backend/libs/middlewares"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// AuthService serves the credential endpoints and resolves identities for the auth middleware
type AuthService interface {
	handlers.AuthService
	middleware.IdentityLoader
}

// Dependencies holds everything the router wires together
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             handlers.Pinger
	TokenVerifier  middleware.TokenVerifier
	AuthService    AuthService
	BlogService    handlers.BlogService
	ProfileService handlers.ProfileService
	AdminService   handlers.AdminService
}

// NewRouter builds the chi router with shared middleware, /health, /swagger and the /api routes
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logger := deps.Logger

	authHandler := handlers.NewAuthHandler(deps.AuthService, logger)
	blogHandler := handlers.NewBlogHandler(deps.BlogService, logger)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService, logger)
	adminHandler := handlers.NewAdminHandler(deps.AdminService, logger)
	healthHandler := handlers.NewHealthHandler(deps.DB, logger)

	authMiddleware := middleware.AuthMiddleware(deps.TokenVerifier, deps.AuthService, logger)
	adminMiddleware := middleware.RoleMiddleware(string(models.RoleAdmin), logger)
	credentialsRateLimit := httprate.LimitByIP(cfg.RateLimit.AuthRequestsPerMinute, time.Minute)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(sharedMiddleware.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger))
	r.Use(sharedMiddleware.RecoveryMiddleware(logger))
	r.Use(sharedMiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
	r.Use(sharedMiddleware.RequestSizeLimitMiddleware(sharedMiddleware.DefaultMaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	healthHandler.RegisterRoutes(r)

	r.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authMiddleware, credentialsRateLimit)
		blogHandler.RegisterRoutes(r, authMiddleware)
		profileHandler.RegisterRoutes(r, authMiddleware)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			adminHandler.RegisterRoutes(r)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		sharedHandlers.WriteError(w, r, logger, apperrors.NotFound("Route not found"))
	})

	return r
}
