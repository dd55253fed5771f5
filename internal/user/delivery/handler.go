package delivery

import (
	"errors"
	"net/http"

	userdto "painplus-backend/internal/user/dto"
	"painplus-backend/internal/user/usecase"

	"github.com/gin-gonic/gin"
)

// ProfileHandler exposes the profile endpoints. All routes run behind the
// auth middleware.
type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileUsecase usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
	}
}

// GetProfile handles GET /api/user/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("userID")

	profile, err := h.profileUsecase.Get(userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "code": "NOT_FOUND"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile", "code": "INTERNAL_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile handles PUT /api/user/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("userID")

	var req userdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": "VALIDATION_ERROR"})
		return
	}

	if req.Name == nil && req.AvatarURL == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update", "code": "VALIDATION_ERROR"})
		return
	}

	profile, err := h.profileUsecase.Update(userID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "code": "NOT_FOUND"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "code": "INTERNAL_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
