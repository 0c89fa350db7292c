package mailer

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// emailPattern intentionally mirrors the client-side check: one @, no
// whitespace, at least one dot in the domain. Display names and comment
// syntax are rejected.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateAddress reports whether email is syntactically acceptable for an
// emergency send.
func ValidateAddress(email string) bool {
	return emailPattern.MatchString(email)
}

// SendResult is the per-recipient outcome of one send attempt.
type SendResult struct {
	Success   bool
	MessageID string
	Err       string
}

// AlertEmail carries everything needed to compose one emergency alert.
type AlertEmail struct {
	ToEmail       string
	ToName        string
	UserName      string
	Location      string
	Reason        string
	CustomMessage string

	// Optional location metadata forwarded from the triggering client.
	Accuracy          *float64
	LocationTimestamp string
	Altitude          *float64
	Speed             *float64
}

// Service sends emergency alert emails through SendGrid.
type Service struct {
	client    *sendgrid.Client
	apiKey    string
	fromEmail string
	fromName  string
}

func NewService(apiKey, fromEmail, fromName string) *Service {
	return &Service{
		client:    sendgrid.NewSendClient(apiKey),
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Configured reports whether the transport has credentials and a sender.
func (s *Service) Configured() bool {
	return s.apiKey != "" && s.fromEmail != ""
}

// FromEmail returns the configured sender address.
func (s *Service) FromEmail() string {
	return s.fromEmail
}

// SendEmergencyAlert validates the recipient address, composes the plain and
// HTML alert bodies and sends one email. Transport and validation failures
// are both folded into the returned SendResult.
func (s *Service) SendEmergencyAlert(ctx context.Context, alert AlertEmail) SendResult {
	if !s.Configured() {
		return SendResult{Err: "email service not configured"}
	}
	if !ValidateAddress(alert.ToEmail) {
		return SendResult{Err: "Invalid email format"}
	}

	log.Printf("[Mailer] Sending emergency email to %s...", alert.ToEmail)

	currentTime := time.Now().Format("Jan 2, 2006 3:04:05 PM")
	locationText := formatLocation(alert)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(alert.ToName, alert.ToEmail)
	subject := fmt.Sprintf("🚨 EMERGENCY SOS ALERT - %s", alert.UserName)
	plainContent := plainBody(alert, locationText, currentTime)
	htmlContent := htmlBody(alert, locationText, currentTime)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		log.Printf("[Mailer] Failed to send emergency email to %s: %v", alert.ToEmail, err)
		return SendResult{Err: err.Error()}
	}
	if response.StatusCode >= 400 {
		log.Printf("[Mailer] SendGrid rejected email to %s: status %d", alert.ToEmail, response.StatusCode)
		return SendResult{Err: fmt.Sprintf("send rejected with status %d", response.StatusCode)}
	}

	messageID := ""
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}

	log.Printf("[Mailer] Emergency email sent successfully to %s: %s", alert.ToEmail, messageID)
	return SendResult{Success: true, MessageID: messageID}
}

// formatLocation enriches coordinate-looking locations with map links and the
// optional accuracy/altitude/speed metadata. Placeholder locations pass
// through untouched.
func formatLocation(alert AlertEmail) string {
	location := alert.Location
	if !strings.Contains(location, ",") ||
		strings.Contains(location, "Location unavailable") ||
		strings.Contains(location, "access denied") {
		return location
	}

	coords := strings.ReplaceAll(location, " ", "")
	var b strings.Builder
	b.WriteString(location)
	b.WriteString("\nGoogle Maps: https://maps.google.com/?q=" + coords)
	b.WriteString("\nApple Maps: https://maps.apple.com/?q=" + coords)
	if alert.Accuracy != nil {
		fmt.Fprintf(&b, "\nAccuracy: ±%dm", int(math.Round(*alert.Accuracy)))
	}
	if alert.LocationTimestamp != "" {
		b.WriteString("\nLocation Time: " + alert.LocationTimestamp)
	}
	if alert.Altitude != nil {
		fmt.Fprintf(&b, "\nAltitude: %dm", int(math.Round(*alert.Altitude)))
	}
	if alert.Speed != nil && *alert.Speed > 0 {
		fmt.Fprintf(&b, "\nSpeed: %d km/h", int(math.Round(*alert.Speed*3.6)))
	}
	return b.String()
}

func plainBody(alert AlertEmail, locationText, currentTime string) string {
	var b strings.Builder
	b.WriteString("EMERGENCY SOS ALERT\n\n")
	fmt.Fprintf(&b, "URGENT: %s has triggered an emergency SOS alert!\n\n", alert.UserName)
	fmt.Fprintf(&b, "LOCATION: %s\n", locationText)
	fmt.Fprintf(&b, "TIME: %s\n", currentTime)
	fmt.Fprintf(&b, "REASON: %s\n\n", alert.Reason)
	if alert.CustomMessage != "" {
		fmt.Fprintf(&b, "ADDITIONAL MESSAGE: %s\n\n", alert.CustomMessage)
	}
	b.WriteString("THIS IS AN EMERGENCY - IMMEDIATE RESPONSE REQUIRED\n\n")
	fmt.Fprintf(&b, "Please contact %s immediately or call emergency services if needed.\n\n", alert.UserName)
	b.WriteString("Sent via Elderlyze Emergency System")
	return b.String()
}

func htmlBody(alert AlertEmail, locationText, currentTime string) string {
	customSection := ""
	if alert.CustomMessage != "" {
		customSection = fmt.Sprintf(`
        <div style="margin-bottom: 20px;">
          <h3 style="color: #374151; margin: 0 0 10px 0;">💬 Additional Message:</h3>
          <p style="margin: 0; padding: 10px; background: #f9fafb; border-radius: 4px;">%s</p>
        </div>`, alert.CustomMessage)
	}

	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #fff; border: 2px solid #ef4444; border-radius: 8px;">
      <div style="background: #ef4444; color: white; padding: 20px; text-align: center;">
        <h1 style="margin: 0; font-size: 24px;">🚨 EMERGENCY SOS ALERT 🚨</h1>
      </div>
      <div style="padding: 20px;">
        <div style="background: #fef2f2; border: 1px solid #ef4444; border-radius: 6px; padding: 16px; margin-bottom: 20px;">
          <h2 style="color: #dc2626; margin: 0 0 10px 0;">URGENT: Emergency Alert Triggered</h2>
          <p style="margin: 0; font-size: 16px; font-weight: bold;">%s has triggered an emergency SOS alert!</p>
        </div>
        <div style="margin-bottom: 20px;">
          <h3 style="color: #374151; margin: 0 0 10px 0;">📍 Location:</h3>
          <p style="margin: 0; padding: 10px; background: #f9fafb; border-radius: 4px; white-space: pre-line;">%s</p>
        </div>
        <div style="margin-bottom: 20px;">
          <h3 style="color: #374151; margin: 0 0 10px 0;">⏰ Time:</h3>
          <p style="margin: 0; padding: 10px; background: #f9fafb; border-radius: 4px;">%s</p>
        </div>
        <div style="margin-bottom: 20px;">
          <h3 style="color: #374151; margin: 0 0 10px 0;">📋 Reason:</h3>
          <p style="margin: 0; padding: 10px; background: #f9fafb; border-radius: 4px;">%s</p>
        </div>%s
        <div style="background: #dc2626; color: white; padding: 16px; border-radius: 6px; text-align: center; margin-bottom: 20px;">
          <h3 style="margin: 0; font-size: 18px;">⚠️ IMMEDIATE RESPONSE REQUIRED ⚠️</h3>
          <p style="margin: 8px 0 0 0;">Please contact %s immediately or call emergency services if needed.</p>
        </div>
        <div style="text-align: center; color: #6b7280; font-size: 14px;">
          <p style="margin: 0;">Sent via Elderlyze Emergency System</p>
        </div>
      </div>
    </div>`,
		alert.UserName, locationText, currentTime, alert.Reason, customSection, alert.UserName)
}
