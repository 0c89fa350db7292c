package repository

import (
	"context"
	"fmt"

	"elderlyze-backend/internal/reminder/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// MedicineRepository reads reminder items from the global medicines
// collection. The scanner only ever reads; all writes come from the client.
type MedicineRepository interface {
	ListAlertEnabled(ctx context.Context) ([]domain.Medicine, error)
}

type medicineRepository struct {
	db *firestore.Client
}

func NewMedicineRepository(db *firestore.Client) MedicineRepository {
	return &medicineRepository{db: db}
}

// ListAlertEnabled returns every medicine with alerts enabled, across all
// users.
func (r *medicineRepository) ListAlertEnabled(ctx context.Context) ([]domain.Medicine, error) {
	iter := r.db.Collection("medicines").Where("alertsEnabled", "==", true).Documents(ctx)
	defer iter.Stop()

	var medicines []domain.Medicine
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list alert-enabled medicines: %w", err)
		}

		var m domain.Medicine
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("failed to decode medicine %s: %w", doc.Ref.ID, err)
		}
		m.ID = doc.Ref.ID
		medicines = append(medicines, m)
	}
	return medicines, nil
}
