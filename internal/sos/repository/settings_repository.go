package repository

import (
	"context"
	"fmt"

	"elderlyze-backend/internal/sos/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// SettingsRepository enumerates every user's SOS settings for the
// inactivity scan.
type SettingsRepository interface {
	ListAll(ctx context.Context) ([]domain.UserSettings, error)
}

type settingsRepository struct {
	db *firestore.Client
}

func NewSettingsRepository(db *firestore.Client) SettingsRepository {
	return &settingsRepository{db: db}
}

// ListAll walks the users collection and returns the settings embedded in
// each profile document. Users without a sosSettings field are skipped.
func (r *settingsRepository) ListAll(ctx context.Context) ([]domain.UserSettings, error) {
	iter := r.db.Collection("users").Documents(ctx)
	defer iter.Stop()

	var all []domain.UserSettings
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list user settings: %w", err)
		}

		var profile struct {
			SosSettings *domain.Settings `firestore:"sosSettings"`
		}
		if err := doc.DataTo(&profile); err != nil {
			// Profile documents carry client-owned fields of varying shape;
			// one undecodable profile should not stop the scan.
			continue
		}
		if profile.SosSettings == nil {
			continue
		}
		all = append(all, domain.UserSettings{UserID: doc.Ref.ID, Settings: *profile.SosSettings})
	}
	return all, nil
}
