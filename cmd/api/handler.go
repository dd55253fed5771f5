package api

import (
	authUsecase "painplus-backend/internal/auth/usecase"
	"painplus-backend/internal/auth/ratelimit"
	userUsecase "painplus-backend/internal/user/usecase"
	"painplus-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase    authUsecase.AuthUsecase
	profileUsecase userUsecase.ProfileUsecase
	limiter        *ratelimit.Limiter
	config         *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, profileUc userUsecase.ProfileUsecase, limiter *ratelimit.Limiter, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:    authUc,
		profileUsecase: profileUc,
		limiter:        limiter,
		config:         cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.authUsecase, h.profileUsecase, h.limiter)

	return r.Run(addr)
}
