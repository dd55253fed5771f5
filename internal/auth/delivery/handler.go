package delivery

import (
	"errors"
	"net/http"

	authdomain "painplus-backend/internal/auth/domain"
	authdto "painplus-backend/internal/auth/dto"
	"painplus-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the auth gateway over HTTP.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

func errorResponse(c *gin.Context, status int, message, code string) {
	c.JSON(status, gin.H{"error": message, "code": code})
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req authdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body", "MISSING_FIELDS")
		return
	}

	resp, err := h.authUsecase.Signup(&req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			errorResponse(c, http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
		case errors.Is(err, usecase.ErrInvalidEmail):
			errorResponse(c, http.StatusBadRequest, err.Error(), "INVALID_EMAIL")
		case errors.Is(err, usecase.ErrWeakPassword):
			errorResponse(c, http.StatusBadRequest, err.Error(), "WEAK_PASSWORD")
		case errors.Is(err, usecase.ErrEmailExists):
			errorResponse(c, http.StatusConflict, err.Error(), "EMAIL_EXISTS")
		default:
			errorResponse(c, http.StatusInternalServerError, "Signup failed", "INTERNAL_ERROR")
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body", "MISSING_FIELDS")
		return
	}

	resp, err := h.authUsecase.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			errorResponse(c, http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
		case errors.Is(err, usecase.ErrWrongAuthProvider):
			errorResponse(c, http.StatusUnauthorized, err.Error(), "WRONG_AUTH_PROVIDER")
		case errors.Is(err, usecase.ErrInvalidCredentials):
			errorResponse(c, http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
		default:
			errorResponse(c, http.StatusInternalServerError, "Login failed", "INTERNAL_ERROR")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MicrosoftCallback handles POST /api/auth/microsoft/callback
func (h *AuthHandler) MicrosoftCallback(c *gin.Context) {
	var req authdto.OAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
		return
	}

	resp, err := h.authUsecase.MicrosoftCallback(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRequest):
			errorResponse(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		case errors.Is(err, usecase.ErrOAuthFailed):
			errorResponse(c, http.StatusUnauthorized, "Failed to authenticate with Microsoft", "AUTH_FAILED")
		default:
			errorResponse(c, http.StatusInternalServerError, "Authentication failed", "INTERNAL_ERROR")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Verify handles POST /api/auth/verify. It runs behind AuthMiddleware, so
// reaching here means the token already resolved to a live account.
func (h *AuthHandler) Verify(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  user,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so there is
// nothing to revoke server-side; clients discard the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func currentUser(c *gin.Context) *authdomain.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, _ := value.(*authdomain.User)
	return user
}
