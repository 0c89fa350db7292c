package delivery

import (
	"net/http"

	"elderlyze-backend/internal/auth/repository"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	tokenRepo repository.TokenRepository
}

func NewAuthHandler(tokenRepo repository.TokenRepository) *AuthHandler {
	return &AuthHandler{tokenRepo: tokenRepo}
}

type registerTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform"`
}

// RegisterFCMToken stores a device token for the authenticated user
func (h *AuthHandler) RegisterFCMToken(c *gin.Context) {
	userID := c.GetString("userID")

	var req registerTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Token is required"})
		return
	}
	if req.Platform == "" {
		req.Platform = "web"
	}

	if err := h.tokenRepo.SaveToken(c.Request.Context(), userID, req.Token, req.Platform); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Token registered"})
}

// UnregisterFCMToken removes a device token for the authenticated user
func (h *AuthHandler) UnregisterFCMToken(c *gin.Context) {
	userID := c.GetString("userID")
	token := c.Param("token")

	if err := h.tokenRepo.DeleteToken(c.Request.Context(), userID, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Token removed"})
}
