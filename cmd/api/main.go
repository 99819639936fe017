package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/proconnect/backend/internal/api"
	"github.com/proconnect/backend/internal/api/handlers"
	"github.com/proconnect/backend/internal/api/middleware"
	"github.com/proconnect/backend/internal/repository"
	"github.com/proconnect/backend/internal/services"
	"github.com/proconnect/backend/pkg/config"
	"github.com/proconnect/backend/pkg/database"
	"github.com/proconnect/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting ProConnect API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
	}

	// Connect to database
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.AppEnv != "production")
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	tokenSvc := services.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	authSvc := services.NewAuthService(userRepo, tokenSvc)
	postSvc := services.NewPostService(postRepo, commentRepo, userRepo)

	// Router
	router := api.NewRouter(api.Dependencies{
		Auth:    middleware.Auth(tokenSvc, userRepo),
		Health:  handlers.NewHealthHandler(),
		Users:   handlers.NewUsersHandler(userRepo, postSvc),
		Posts:   handlers.NewPostsHandler(postSvc),
		Account: handlers.NewAuthHandler(authSvc, userRepo),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
