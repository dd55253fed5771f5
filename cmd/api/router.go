package api

import (
	"net/http"

	"painplus-backend/internal/auth/delivery"
	"painplus-backend/internal/auth/ratelimit"
	authUsecase "painplus-backend/internal/auth/usecase"
	userDelivery "painplus-backend/internal/user/delivery"
	userUsecase "painplus-backend/internal/user/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, profileUc userUsecase.ProfileUsecase, limiter *ratelimit.Limiter) {
	authHandler := delivery.NewAuthHandler(authUc)
	profileHandler := userDelivery.NewProfileHandler(profileUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Auth routes. Signup and login sit behind the sliding window
		// limiter; everything downstream of the gateway requires a Bearer
		// token.
		auth := api.Group("/auth")
		{
			auth.POST("/signup", delivery.RateLimitMiddleware(limiter, ratelimit.EndpointSignup), authHandler.Signup)
			auth.POST("/login", delivery.RateLimitMiddleware(limiter, ratelimit.EndpointLogin), authHandler.Login)
			auth.POST("/microsoft/callback", authHandler.MicrosoftCallback)
			auth.POST("/verify", delivery.AuthMiddleware(authUc), authHandler.Verify)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
			auth.POST("/logout", authHandler.Logout)
		}

		// User routes (protected)
		user := api.Group("/user")
		user.Use(delivery.AuthMiddleware(authUc))
		{
			user.GET("/profile", profileHandler.GetProfile)
			user.PUT("/profile", profileHandler.UpdateProfile)
		}
	}
}
