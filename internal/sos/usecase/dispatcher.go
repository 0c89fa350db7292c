package usecase

import (
	"context"
	"log"
	"time"

	authusecase "elderlyze-backend/internal/auth/usecase"
	"elderlyze-backend/internal/sos/domain"
	"elderlyze-backend/internal/sos/repository"
	"elderlyze-backend/pkg/mailer"
)

// Mailer is the email delivery capability the dispatcher fans out through.
// *mailer.Service satisfies it.
type Mailer interface {
	SendEmergencyAlert(ctx context.Context, alert mailer.AlertEmail) mailer.SendResult
}

// Dispatcher notifies every emergency contact of a user by email and
// persists one immutable audit record per dispatch.
type Dispatcher struct {
	contactRepo repository.ContactRepository
	alertRepo   repository.AlertRepository
	verifier    authusecase.Verifier
	mailer      Mailer
	now         func() time.Time
}

func NewDispatcher(
	contactRepo repository.ContactRepository,
	alertRepo repository.AlertRepository,
	verifier authusecase.Verifier,
	m Mailer,
) *Dispatcher {
	return &Dispatcher{
		contactRepo: contactRepo,
		alertRepo:   alertRepo,
		verifier:    verifier,
		mailer:      m,
		now:         time.Now,
	}
}

// Dispatch runs one SOS fan-out. Per-contact failures are folded into the
// result list and never abort the dispatch; only a failure to load contacts,
// resolve the user or persist the audit record yields Success=false.
func (d *Dispatcher) Dispatch(ctx context.Context, userID, location, reason, customMessage string, details *domain.LocationDetails) domain.DispatchResult {
	log.Printf("[SOS] Starting SOS email alert process for user %s (location=%q reason=%q)", userID, location, reason)

	contacts, err := d.contactRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("[SOS] Error loading contacts for user %s: %v", userID, err)
		return domain.DispatchResult{Success: false, Error: err.Error()}
	}
	if len(contacts) == 0 {
		log.Printf("[SOS] No email contacts found for user %s", userID)
		return domain.DispatchResult{Success: false, Message: "No email contacts found"}
	}

	log.Printf("[SOS] Found %d email contacts for user %s", len(contacts), userID)

	displayName, userEmail, err := d.verifier.UserInfo(ctx, userID)
	if err != nil {
		log.Printf("[SOS] Error resolving user %s: %v", userID, err)
		return domain.DispatchResult{Success: false, Error: err.Error()}
	}
	userName := displayName
	if userName == "" {
		userName = userEmail
	}
	if userName == "" {
		userName = "Unknown User"
	}
	if userEmail == "" {
		userEmail = "Unknown"
	}

	// Contacts are processed sequentially so the result list preserves
	// contact order for the audit record.
	results := make([]domain.EmailResult, 0, len(contacts))
	for _, contact := range contacts {
		if !mailer.ValidateAddress(contact.Email) {
			log.Printf("[SOS] Invalid email for %s: %s", contact.Name, contact.Email)
			errText := "Invalid email format"
			results = append(results, domain.EmailResult{
				Contact:   contact.Name,
				Email:     contact.Email,
				Success:   false,
				Error:     &errText,
				ErrorCode: domain.ErrorCodeInvalidEmail,
			})
			continue
		}

		log.Printf("[SOS] Sending emergency email to contact %s at %s", contact.Name, contact.Email)
		sendResult := d.mailer.SendEmergencyAlert(ctx, buildAlertEmail(contact, userName, location, reason, customMessage, details))

		result := domain.EmailResult{
			Contact: contact.Name,
			Email:   contact.Email,
			Success: sendResult.Success,
		}
		if sendResult.MessageID != "" {
			id := sendResult.MessageID
			result.MessageID = &id
		}
		if sendResult.Err != "" {
			errText := sendResult.Err
			result.Error = &errText
		}
		results = append(results, result)
	}

	alert := domain.Alert{
		TriggeredAt:   d.now(),
		Status:        "active",
		Contacts:      contacts,
		Location:      location,
		Reason:        reason,
		CustomMessage: customMessage,
		UserID:        userID,
		UserEmail:     userEmail,
		UserName:      userName,
		EmailResults:  results,
	}
	alertID, err := d.alertRepo.Save(ctx, userID, alert)
	if err != nil {
		log.Printf("[SOS] Failed to save SOS alert for user %s: %v", userID, err)
		return domain.DispatchResult{Success: false, Error: err.Error()}
	}
	log.Printf("[SOS] SOS alert saved successfully with ID: %s", alertID)

	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}
	failed := len(results) - successful

	log.Printf("[SOS] SOS email alert completed. Successful: %d, Failed: %d", successful, failed)

	return domain.DispatchResult{
		Success:          true,
		ContactsNotified: successful,
		TotalContacts:    len(results),
		Results:          results,
		Summary: domain.Summary{
			Total:      len(results),
			Successful: successful,
			Failed:     failed,
		},
	}
}

func buildAlertEmail(contact domain.Contact, userName, location, reason, customMessage string, details *domain.LocationDetails) mailer.AlertEmail {
	alert := mailer.AlertEmail{
		ToEmail:       contact.Email,
		ToName:        contact.Name,
		UserName:      userName,
		Location:      location,
		Reason:        reason,
		CustomMessage: customMessage,
	}
	if details != nil {
		alert.Accuracy = details.Accuracy
		alert.LocationTimestamp = details.Timestamp
		alert.Altitude = details.Altitude
		alert.Speed = details.Speed
	}
	return alert
}
