package delivery

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"painplus-backend/internal/auth/ratelimit"
	"painplus-backend/internal/auth/token"
	"painplus-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the Bearer token and attaches the resolved user
// to the request context. Any verification failure rejects the request
// before it reaches business logic.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorResponse(c, http.StatusUnauthorized, "No token provided", "NO_TOKEN")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			errorResponse(c, http.StatusUnauthorized, "No token provided", "NO_TOKEN")
			c.Abort()
			return
		}

		user, err := authUsecase.VerifyToken(parts[1])
		if err != nil {
			status, msg, code := verifyFailure(err)
			errorResponse(c, status, msg, code)
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

func verifyFailure(err error) (int, string, string) {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return http.StatusUnauthorized, "Invalid or expired token", "EXPIRED_TOKEN"
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusUnauthorized, "User not found", "USER_NOT_FOUND"
	case errors.Is(err, token.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid or expired token", "INVALID_TOKEN"
	default:
		return http.StatusInternalServerError, "Token verification failed", "INTERNAL_ERROR"
	}
}

// RateLimitMiddleware guards one endpoint with the sliding window limiter.
// A degraded store fails open: the request proceeds and the lost protection
// is logged.
func RateLimitMiddleware(limiter *ratelimit.Limiter, endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := ratelimit.ClientID(c.Request.Header)
		result := limiter.Check(clientID, endpoint)

		if result.Degraded {
			log.Printf("[WARN] rate limit check degraded for %s, allowing request", endpoint)
		}

		if result.Remaining >= 0 {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		}

		if !result.Allowed {
			c.Header("Retry-After", strconv.Itoa(result.RetryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests. Please try again later.",
				"code":       "RATE_LIMITED",
				"retryAfter": result.RetryAfter,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
