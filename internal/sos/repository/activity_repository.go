package repository

import (
	"context"
	"fmt"
	"time"

	"elderlyze-backend/internal/sos/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ActivityRepository tracks the single last-activity document per user.
type ActivityRepository interface {
	Get(ctx context.Context, userID string) (*domain.Activity, error)
	Touch(ctx context.Context, userID, activityType string, details map[string]any) error
	RearmAutoSOS(ctx context.Context, userID string) error
}

type activityRepository struct {
	db  *firestore.Client
	now func() time.Time
}

func NewActivityRepository(db *firestore.Client) ActivityRepository {
	return &activityRepository{db: db, now: time.Now}
}

func (r *activityRepository) doc(userID string) *firestore.DocumentRef {
	return r.db.Collection("users").Doc(userID).Collection("lastActivity").Doc("current")
}

// Get returns the user's last-activity record, or nil when none was ever
// recorded.
func (r *activityRepository) Get(ctx context.Context, userID string) (*domain.Activity, error) {
	doc, err := r.doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last activity for user %s: %w", userID, err)
	}

	var a domain.Activity
	if err := doc.DataTo(&a); err != nil {
		return nil, fmt.Errorf("failed to decode last activity for user %s: %w", userID, err)
	}
	return &a, nil
}

// Touch overwrites the record with a fresh activity report.
func (r *activityRepository) Touch(ctx context.Context, userID, activityType string, details map[string]any) error {
	now := r.now()
	if activityType == "" {
		activityType = "general"
	}
	if details == nil {
		details = map[string]any{}
	}
	_, err := r.doc(userID).Set(ctx, map[string]any{
		"timestamp": now,
		"type":      activityType,
		"details":   details,
		"updatedAt": now,
	})
	if err != nil {
		return fmt.Errorf("failed to update activity for user %s: %w", userID, err)
	}
	return nil
}

// RearmAutoSOS resets the activity timestamp after an auto-SOS fire so the
// next scan sees zero elapsed time.
func (r *activityRepository) RearmAutoSOS(ctx context.Context, userID string) error {
	now := r.now()
	_, err := r.doc(userID).Set(ctx, map[string]any{
		"timestamp":   now,
		"lastAutoSOS": now,
	})
	if err != nil {
		return fmt.Errorf("failed to re-arm auto SOS for user %s: %w", userID, err)
	}
	return nil
}
