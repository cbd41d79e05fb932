package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Stewz00/school-service/internal/auth"
	"github.com/Stewz00/school-service/internal/config"
	"github.com/Stewz00/school-service/internal/database"
	"github.com/Stewz00/school-service/internal/handler"
	"github.com/Stewz00/school-service/internal/logging"
	"github.com/Stewz00/school-service/internal/repository"
	"github.com/Stewz00/school-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, cfg.DbURL); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	db, err := database.New(ctx, cfg.DbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatal(err)
	}

	// Initialize repositories, services, and handlers
	accounts := repository.NewAccountRepository(db)
	sessions := repository.NewSessionRepository(db)
	profiles := repository.NewProfileRepository(db)

	var resolverOpts []auth.Option
	if cfg.StaffOnlyLogin {
		resolverOpts = append(resolverOpts, auth.WithStaffOnly())
	}
	resolver := auth.NewResolver(accounts, hasher, resolverOpts...)

	authService := service.NewAuthService(resolver, accounts, sessions, hasher, service.TokenConfig{
		Secret:     cfg.JwtSecret,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}, logger)

	router := handler.NewRouter(handler.Deps{
		Auth:      authService,
		Approvals: service.NewApprovalService(accounts, logger),
		Profiles:  service.NewProfileService(profiles, logger),
		Log:       logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info(ctx, "server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info(ctx, "server exited properly")
}
