package api

import (
	authDelivery "elderlyze-backend/internal/auth/delivery"
	authUsecase "elderlyze-backend/internal/auth/usecase"
	sosDelivery "elderlyze-backend/internal/sos/delivery"
	"elderlyze-backend/pkg/config"
	"elderlyze-backend/pkg/mailer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	verifier    authUsecase.Verifier
	sosHandler  *sosDelivery.SosHandler
	authHandler *authDelivery.AuthHandler
	mailHandler *MailTestHandler
	config      *config.Config
}

func NewHandler(
	verifier authUsecase.Verifier,
	sosHandler *sosDelivery.SosHandler,
	authHandler *authDelivery.AuthHandler,
	mailService *mailer.Service,
	cfg *config.Config,
) *Handler {
	return &Handler{
		verifier:    verifier,
		sosHandler:  sosHandler,
		authHandler: authHandler,
		mailHandler: NewMailTestHandler(mailService),
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	SetupRoutes(r, h.verifier, h.sosHandler, h.authHandler, h.mailHandler)

	return r.Run(addr)
}
