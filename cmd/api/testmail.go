package api

import (
	"net/http"
	"time"

	"elderlyze-backend/pkg/mailer"

	"github.com/gin-gonic/gin"
)

// MailTestHandler exposes development endpoints for verifying the email
// transport without triggering a real SOS.
type MailTestHandler struct {
	mailService *mailer.Service
}

func NewMailTestHandler(mailService *mailer.Service) *MailTestHandler {
	return &MailTestHandler{mailService: mailService}
}

// TestConnection reports whether the email transport is configured
func (h *MailTestHandler) TestConnection(c *gin.Context) {
	if !h.mailService.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Email service not configured",
			"error":   "SendGrid credentials not set",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Email service configured",
		"provider": "sendgrid",
		"account": gin.H{
			"email": h.mailService.FromEmail(),
			"type":  "SendGrid",
		},
	})
}

type testEmailRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SendTestEmail sends a sample emergency alert to the given address
func (h *MailTestHandler) SendTestEmail(c *gin.Context) {
	var req testEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email address is required"})
		return
	}
	if !mailer.ValidateAddress(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email format"})
		return
	}

	message := req.Message
	if message == "" {
		message = "This is a test email. Your email setup is working correctly!"
	}

	accuracy := 10.0
	result := h.mailService.SendEmergencyAlert(c.Request.Context(), mailer.AlertEmail{
		ToEmail:           req.Email,
		ToName:            "Test User",
		UserName:          "Test User",
		Location:          "40.7128, -74.0060",
		Reason:            "Test emergency alert",
		CustomMessage:     message,
		Accuracy:          &accuracy,
		LocationTimestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if !result.Success {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Failed to send test email",
			"error":   result.Err,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Test email sent successfully",
		"messageId": result.MessageID,
	})
}
