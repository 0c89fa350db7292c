package domain

import "time"

// FCMToken represents a Firebase Cloud Messaging device token registered by
// one of the user's browsers. The token string doubles as the document ID.
type FCMToken struct {
	Token     string    `json:"-" firestore:"token"`
	Platform  string    `json:"platform" firestore:"platform"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
