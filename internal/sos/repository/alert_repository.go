package repository

import (
	"context"
	"fmt"

	"elderlyze-backend/internal/sos/domain"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

// AlertRepository persists and lists SOS audit records. Records are
// append-only; nothing updates an alert after Save.
type AlertRepository interface {
	Save(ctx context.Context, userID string, alert domain.Alert) (string, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.Alert, error)
}

type alertRepository struct {
	db *firestore.Client
}

func NewAlertRepository(db *firestore.Client) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) alerts(userID string) *firestore.CollectionRef {
	return r.db.Collection("users").Doc(userID).Collection("sosAlerts")
}

// Save writes one audit record and returns its generated ID.
func (r *alertRepository) Save(ctx context.Context, userID string, alert domain.Alert) (string, error) {
	id := uuid.New().String()
	if _, err := r.alerts(userID).Doc(id).Set(ctx, alert); err != nil {
		return "", fmt.Errorf("failed to save SOS alert for user %s: %w", userID, err)
	}
	return id, nil
}

// ListRecent returns up to limit alerts, newest first.
func (r *alertRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.Alert, error) {
	iter := r.alerts(userID).OrderBy("triggeredAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var alerts []domain.Alert
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list SOS alerts for user %s: %w", userID, err)
		}

		var a domain.Alert
		if err := doc.DataTo(&a); err != nil {
			return nil, fmt.Errorf("failed to decode SOS alert %s: %w", doc.Ref.ID, err)
		}
		a.ID = doc.Ref.ID
		alerts = append(alerts, a)
	}
	return alerts, nil
}
