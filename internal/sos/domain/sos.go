package domain

import "time"

// Contact is one person to notify on SOS. Contacts are CRUD-managed by the
// client; the server only reads them.
type Contact struct {
	ID       string `json:"id" firestore:"id"`
	Name     string `json:"name" firestore:"name"`
	Relation string `json:"relation" firestore:"relation"`
	Email    string `json:"email" firestore:"email"`
	Priority string `json:"priority" firestore:"priority"`
}

// Settings is the per-user automatic SOS configuration, embedded in the user
// profile document.
type Settings struct {
	AutoSos bool    `json:"autoSos" firestore:"autoSos"`
	Hours   float64 `json:"hours" firestore:"hours"`
}

// UserSettings pairs a settings snapshot with its owning user.
type UserSettings struct {
	UserID   string
	Settings Settings
}

// Activity is the single mutable last-activity record per user. It is
// overwritten on every report and on every auto-SOS fire.
type Activity struct {
	Timestamp   time.Time      `json:"timestamp" firestore:"timestamp"`
	Type        string         `json:"type" firestore:"type"`
	Details     map[string]any `json:"details" firestore:"details"`
	LastAutoSOS time.Time      `json:"lastAutoSOS" firestore:"lastAutoSOS"`
	UpdatedAt   time.Time      `json:"updatedAt" firestore:"updatedAt"`
}

// EmailResult is the outcome of one per-contact send attempt. Absent
// message ID and error are nil so the persisted record stores explicit
// nulls. ErrorCode tags validation failures for the API response only; it is
// not persisted.
type EmailResult struct {
	Contact   string  `json:"contact" firestore:"contact"`
	Email     string  `json:"email" firestore:"email"`
	Success   bool    `json:"success" firestore:"success"`
	MessageID *string `json:"messageId" firestore:"messageId"`
	Error     *string `json:"error" firestore:"error"`
	ErrorCode string  `json:"errorCode,omitempty" firestore:"-"`
}

// ErrorCodeInvalidEmail marks a contact skipped before any send attempt.
const ErrorCodeInvalidEmail = "INVALID_EMAIL"

// Summary counts the per-contact outcomes of one dispatch.
type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Alert is the immutable audit record of one SOS dispatch. EmailResults
// preserves contact list order regardless of send completion order.
type Alert struct {
	ID            string        `json:"id" firestore:"-"`
	TriggeredAt   time.Time     `json:"triggeredAt" firestore:"triggeredAt"`
	Status        string        `json:"status" firestore:"status"`
	Contacts      []Contact     `json:"contacts" firestore:"contacts"`
	Location      string        `json:"location" firestore:"location"`
	Reason        string        `json:"reason" firestore:"reason"`
	CustomMessage string        `json:"customMessage" firestore:"customMessage"`
	UserID        string        `json:"userId" firestore:"userId"`
	UserEmail     string        `json:"userEmail" firestore:"userEmail"`
	UserName      string        `json:"userName" firestore:"userName"`
	EmailResults  []EmailResult `json:"emailResults" firestore:"emailResults"`
}

// LocationDetails is optional metadata forwarded from the triggering client.
type LocationDetails struct {
	Accuracy  *float64 `json:"accuracy"`
	Timestamp string   `json:"timestamp"`
	Altitude  *float64 `json:"altitude"`
	Speed     *float64 `json:"speed"`
}

// DispatchResult is the caller-facing outcome of one dispatch. Success means
// the dispatch process ran to completion, not that every contact was
// reached; callers inspect Summary.Failed for that.
type DispatchResult struct {
	Success          bool          `json:"success"`
	Message          string        `json:"message,omitempty"`
	Error            string        `json:"error,omitempty"`
	ContactsNotified int           `json:"contactsNotified"`
	TotalContacts    int           `json:"totalContacts"`
	Results          []EmailResult `json:"results"`
	Summary          Summary       `json:"summary"`
}
