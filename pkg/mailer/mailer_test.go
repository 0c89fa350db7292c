package mailer

import (
	"context"
	"strings"
	"testing"
)

func TestValidateAddress(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"a.b+c@sub.example.co", true},
		{"", false},
		{"not-an-email", false},
		{"missing@domain", false},
		{"two words@example.com", false},
		{"@example.com", false},
		{"alice@", false},
	}

	for _, tc := range cases {
		if got := ValidateAddress(tc.email); got != tc.want {
			t.Errorf("ValidateAddress(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestSendEmergencyAlertUnconfigured(t *testing.T) {
	s := NewService("", "", "Elderlyze")
	result := s.SendEmergencyAlert(context.Background(), AlertEmail{ToEmail: "alice@example.com"})
	if result.Success {
		t.Fatal("unconfigured service must not report success")
	}
	if result.Err == "" {
		t.Fatal("expected an error message")
	}
}

func TestSendEmergencyAlertRejectsInvalidRecipient(t *testing.T) {
	s := NewService("key", "alerts@example.com", "Elderlyze")
	result := s.SendEmergencyAlert(context.Background(), AlertEmail{ToEmail: "bogus"})
	if result.Success {
		t.Fatal("invalid recipient must not report success")
	}
	if result.Err != "Invalid email format" {
		t.Fatalf("unexpected error: %q", result.Err)
	}
}

func TestFormatLocationPassesPlaceholdersThrough(t *testing.T) {
	for _, loc := range []string{
		"Location unavailable",
		"Location unavailable (Auto SOS)",
		"Location access denied, please check browser settings",
		"Central Park",
	} {
		got := formatLocation(AlertEmail{Location: loc})
		if got != loc {
			t.Errorf("formatLocation(%q) = %q, want passthrough", loc, got)
		}
	}
}

func TestFormatLocationEnrichesCoordinates(t *testing.T) {
	accuracy := 12.4
	altitude := 33.7
	speed := 2.0 // m/s

	got := formatLocation(AlertEmail{
		Location:          "40.7128, -74.0060",
		Accuracy:          &accuracy,
		LocationTimestamp: "2025-06-15T12:00:00Z",
		Altitude:          &altitude,
		Speed:             &speed,
	})

	for _, want := range []string{
		"https://maps.google.com/?q=40.7128,-74.0060",
		"https://maps.apple.com/?q=40.7128,-74.0060",
		"Accuracy: ±12m",
		"Location Time: 2025-06-15T12:00:00Z",
		"Altitude: 34m",
		"Speed: 7 km/h",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatLocation output missing %q:\n%s", want, got)
		}
	}
}

func TestFormatLocationSkipsZeroSpeed(t *testing.T) {
	speed := 0.0
	got := formatLocation(AlertEmail{Location: "40.7, -74.0", Speed: &speed})
	if strings.Contains(got, "Speed") {
		t.Errorf("zero speed should be omitted:\n%s", got)
	}
}

func TestPlainBodyContents(t *testing.T) {
	alert := AlertEmail{
		UserName:      "Rose",
		Location:      "40.7, -74.0",
		Reason:        "Manual SOS trigger",
		CustomMessage: "Please come quickly",
	}
	body := plainBody(alert, alert.Location, "Jun 15, 2025 12:00:00 PM")

	for _, want := range []string{
		"EMERGENCY SOS ALERT",
		"URGENT: Rose has triggered an emergency SOS alert!",
		"LOCATION: 40.7, -74.0",
		"REASON: Manual SOS trigger",
		"ADDITIONAL MESSAGE: Please come quickly",
		"Please contact Rose immediately",
		"Sent via Elderlyze Emergency System",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("plain body missing %q", want)
		}
	}
}

func TestPlainBodyOmitsEmptyCustomMessage(t *testing.T) {
	alert := AlertEmail{UserName: "Rose", Location: "x", Reason: "r"}
	body := plainBody(alert, alert.Location, "now")
	if strings.Contains(body, "ADDITIONAL MESSAGE") {
		t.Error("empty custom message should be omitted")
	}
}

func TestHTMLBodyIncludesCustomMessageSection(t *testing.T) {
	withMsg := htmlBody(AlertEmail{UserName: "Rose", CustomMessage: "help"}, "loc", "now")
	if !strings.Contains(withMsg, "Additional Message") {
		t.Error("HTML body missing custom message section")
	}

	without := htmlBody(AlertEmail{UserName: "Rose"}, "loc", "now")
	if strings.Contains(without, "Additional Message") {
		t.Error("HTML body should omit custom message section when empty")
	}
}
