package api

import (
	"net/http"
	"time"

	authDelivery "elderlyze-backend/internal/auth/delivery"
	authUsecase "elderlyze-backend/internal/auth/usecase"
	sosDelivery "elderlyze-backend/internal/sos/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, verifier authUsecase.Verifier, sosHandler *sosDelivery.SosHandler, authHandler *authDelivery.AuthHandler, mailHandler *MailTestHandler) {
	// Liveness/info endpoint (no auth required)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Elderlyze SOS Server is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"endpoints": gin.H{
				"test":           "GET /",
				"sosTrigger":     "POST /api/sos/trigger",
				"activityUpdate": "POST /api/activity/update",
				"sosHistory":     "GET /api/sos/history",
			},
		})
	})

	// Email transport test endpoints (development aid, no auth)
	r.GET("/test/email", mailHandler.TestConnection)
	r.POST("/test/email", mailHandler.SendTestEmail)

	api := r.Group("/api")
	{
		// SOS routes (protected)
		sos := api.Group("/sos")
		sos.Use(authDelivery.AuthMiddleware(verifier))
		{
			sos.POST("/trigger", sosHandler.TriggerSOS)
			sos.GET("/history", sosHandler.GetHistory)
		}

		// Activity routes (protected)
		activity := api.Group("/activity")
		activity.Use(authDelivery.AuthMiddleware(verifier))
		{
			activity.POST("/update", sosHandler.UpdateActivity)
		}

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(authDelivery.AuthMiddleware(verifier))
		{
			fcm.POST("/register", authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", authHandler.UnregisterFCMToken)
		}
	}
}
