package delivery

import (
	"context"
	"log"
	"net/http"

	"elderlyze-backend/internal/sos/domain"
	"elderlyze-backend/internal/sos/repository"

	"github.com/gin-gonic/gin"
)

// Dispatcher is implemented by the SOS usecase.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID, location, reason, customMessage string, details *domain.LocationDetails) domain.DispatchResult
}

const historyLimit = 20

type SosHandler struct {
	dispatcher   Dispatcher
	alertRepo    repository.AlertRepository
	activityRepo repository.ActivityRepository
}

func NewSosHandler(dispatcher Dispatcher, alertRepo repository.AlertRepository, activityRepo repository.ActivityRepository) *SosHandler {
	return &SosHandler{
		dispatcher:   dispatcher,
		alertRepo:    alertRepo,
		activityRepo: activityRepo,
	}
}

type triggerRequest struct {
	Location        string                  `json:"location"`
	LocationDetails *domain.LocationDetails `json:"locationDetails"`
	Reason          string                  `json:"reason"`
	CustomMessage   string                  `json:"customMessage"`
	Timestamp       string                  `json:"timestamp"`
}

// TriggerSOS handles a manual SOS trigger for the authenticated user
func (h *SosHandler) TriggerSOS(c *gin.Context) {
	userID := c.GetString("userID")

	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body", "error": err.Error()})
		return
	}
	if req.Location == "" {
		req.Location = "Location unavailable"
	}
	if req.Reason == "" {
		req.Reason = "Manual SOS trigger"
	}

	log.Printf("[SOS] Manual SOS triggered by user %s (location=%q reason=%q timestamp=%q)", userID, req.Location, req.Reason, req.Timestamp)

	result := h.dispatcher.Dispatch(c.Request.Context(), userID, req.Location, req.Reason, req.CustomMessage, req.LocationDetails)
	if !result.Success {
		message := "Failed to send SOS email alerts"
		if result.Message != "" {
			message = result.Message
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": message,
			"error":   result.Error,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "SOS email alert sent successfully",
		"contactsNotified": result.ContactsNotified,
		"totalContacts":    result.TotalContacts,
		"results":          result.Results,
		"summary":          result.Summary,
	})
}

type activityRequest struct {
	Type    string         `json:"type"`
	Details map[string]any `json:"details"`
}

// UpdateActivity overwrites the caller's last-activity record
func (h *SosHandler) UpdateActivity(c *gin.Context) {
	userID := c.GetString("userID")

	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.activityRepo.Touch(c.Request.Context(), userID, req.Type, req.Details); err != nil {
		log.Printf("[SOS] Error updating activity for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Activity updated"})
}

// GetHistory returns the caller's most recent SOS alerts, newest first
func (h *SosHandler) GetHistory(c *gin.Context) {
	userID := c.GetString("userID")

	alerts, err := h.alertRepo.ListRecent(c.Request.Context(), userID, historyLimit)
	if err != nil {
		log.Printf("[SOS] Error fetching SOS history for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "alerts": alerts})
}
