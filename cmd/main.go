package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/blogspace/backend/docs"
	"github.com/blogspace/backend/internal/repositories"
	"github.com/blogspace/backend/internal/server"
	"github.com/blogspace/backend/internal/services"
	"github.com/blogspace/backend/libs/auth/service"
	"github.com/blogspace/backend/libs/config"
	"github.com/blogspace/backend/libs/logger"
	"github.com/blogspace/backend/migrations"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// @title Blog API
// @version 1.0
// @description REST API for a multi-user blog with JWT authentication

// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Blog API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := migrations.Up(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	postRepo := repositories.NewPostRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator, logger.Logger)
	blogService := services.NewBlogService(postRepo, logger.Logger)
	profileService := services.NewProfileService(userRepo, postRepo, logger.Logger)
	adminService := services.NewAdminService(userRepo, logger.Logger)

	if cfg.Admin.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := adminService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		cancel()
		if err != nil {
			logger.Logger.Fatal("Failed to ensure admin account", zap.Error(err))
		}
	}

	handler := server.NewRouter(server.Dependencies{
		Config:         cfg,
		Logger:         logger.Logger,
		DB:             db,
		TokenVerifier:  tokenGenerator,
		AuthService:    authService,
		BlogService:    blogService,
		ProfileService: profileService,
		AdminService:   adminService,
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
