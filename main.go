package main

import (
	"context"
	"log"

	api "elderlyze-backend/cmd/api"
	authDelivery "elderlyze-backend/internal/auth/delivery"
	authRepo "elderlyze-backend/internal/auth/repository"
	authUsecase "elderlyze-backend/internal/auth/usecase"
	reminderRepo "elderlyze-backend/internal/reminder/repository"
	reminderScheduler "elderlyze-backend/internal/reminder/scheduler"
	sosDelivery "elderlyze-backend/internal/sos/delivery"
	sosRepo "elderlyze-backend/internal/sos/repository"
	sosScheduler "elderlyze-backend/internal/sos/scheduler"
	sosUsecase "elderlyze-backend/internal/sos/usecase"
	"elderlyze-backend/pkg/config"
	"elderlyze-backend/pkg/fcm"
	"elderlyze-backend/pkg/firebase"
	"elderlyze-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize Firebase (Firestore, Auth, Messaging)
	ctx := context.Background()
	fb, err := firebase.New(ctx, cfg.FirebaseCredentials)
	if err != nil {
		log.Fatal("Failed to initialize Firebase: ", err)
	}
	defer fb.Close()

	// Initialize email transport
	mailService := mailer.NewService(cfg.SendgridAPIKey, cfg.SendgridFromEmail, cfg.SendgridFromName)
	if mailService.Configured() {
		log.Println("Email service initialized")
	} else {
		log.Println("Warning: SendGrid credentials not set. Email alerts will not work.")
	}

	// Initialize repositories (dependency injection)
	tokenRepo := authRepo.NewTokenRepository(fb.Firestore)
	medicineRepo := reminderRepo.NewMedicineRepository(fb.Firestore)
	dedupRepo := reminderRepo.NewDedupRepository(fb.Firestore)
	contactRepo := sosRepo.NewContactRepository(fb.Firestore)
	alertRepo := sosRepo.NewAlertRepository(fb.Firestore)
	activityRepo := sosRepo.NewActivityRepository(fb.Firestore)
	settingsRepo := sosRepo.NewSettingsRepository(fb.Firestore)

	// Identity verification and push transport
	verifier := authUsecase.NewFirebaseVerifier(fb.Auth)
	fcmClient := fcm.NewClient(fb.Messaging)

	// SOS dispatch usecase
	dispatcher := sosUsecase.NewDispatcher(contactRepo, alertRepo, verifier, mailService)

	// Background jobs: medicine reminders every minute, inactivity checks
	// every 30 minutes
	scanner := reminderScheduler.NewReminderScanner(medicineRepo, dedupRepo, tokenRepo, fcmClient)
	scanner.Start()
	defer scanner.Stop()

	monitor := sosScheduler.NewInactivityMonitor(settingsRepo, activityRepo, dispatcher)
	monitor.Start()
	defer monitor.Stop()

	// HTTP handlers
	sosHandler := sosDelivery.NewSosHandler(dispatcher, alertRepo, activityRepo)
	authHandler := authDelivery.NewAuthHandler(tokenRepo)
	handler := api.NewHandler(verifier, sosHandler, authHandler, mailService, cfg)

	log.Printf("SOS Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
