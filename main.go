package main

import (
	"log"

	api "painplus-backend/cmd/api"
	authdomain "painplus-backend/internal/auth/domain"
	"painplus-backend/internal/auth/oauth"
	"painplus-backend/internal/auth/ratelimit"
	authRepo "painplus-backend/internal/auth/repository"
	"painplus-backend/internal/auth/token"
	authUsecase "painplus-backend/internal/auth/usecase"
	userUsecase "painplus-backend/internal/user/usecase"
	"painplus-backend/pkg/config"
	"painplus-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RateLimitAttempt{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	attemptStore := authRepo.NewAttemptRepository(db)

	// Initialize rate limiter with the configured per-endpoint policies
	limiter := ratelimit.NewLimiter(attemptStore, map[string]ratelimit.Policy{
		ratelimit.EndpointLogin: {
			Window:        cfg.LoginWindow,
			MaxRequests:   cfg.LoginMaxRequests,
			BlockDuration: cfg.LoginBlockDuration,
		},
		ratelimit.EndpointSignup: {
			Window:        cfg.SignupWindow,
			MaxRequests:   cfg.SignupMaxRequests,
			BlockDuration: cfg.SignupBlockDuration,
		},
	})

	// Initialize token manager and OAuth provider
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiry)
	microsoft := oauth.NewMicrosoftProvider(
		cfg.MicrosoftClientID,
		cfg.MicrosoftClientSecret,
		cfg.MicrosoftTenantID,
		cfg.MicrosoftRedirectURI,
	)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, tokens, microsoft)
	profileUsecaseInstance := userUsecase.NewProfileUsecase(userRepo)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, profileUsecaseInstance, limiter, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
