package repository

import (
	"context"
	"fmt"
	"time"

	"elderlyze-backend/internal/reminder/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DedupRepository is the write-once ledger guaranteeing at-most-once
// reminder delivery per slot occurrence. Records are grouped by date so old
// dates are simply never queried again.
type DedupRepository interface {
	Exists(ctx context.Context, key domain.DedupKey) (bool, error)
	Record(ctx context.Context, key domain.DedupKey, sentAt time.Time) error
}

type dedupRepository struct {
	db *firestore.Client
}

func NewDedupRepository(db *firestore.Client) DedupRepository {
	return &dedupRepository{db: db}
}

func (r *dedupRepository) doc(key domain.DedupKey) *firestore.DocumentRef {
	return r.db.Collection("notificationRuns").Doc(key.Date).Collection("sent").Doc(key.ID())
}

// Exists reports whether a record was previously written for this exact key.
func (r *dedupRepository) Exists(ctx context.Context, key domain.DedupKey) (bool, error) {
	_, err := r.doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check dedup record %s: %w", key.ID(), err)
	}
	return true, nil
}

// Record writes the sent marker for a key. Writing the same key twice is
// harmless; last write wins and the data is advisory only.
func (r *dedupRepository) Record(ctx context.Context, key domain.DedupKey, sentAt time.Time) error {
	_, err := r.doc(key).Set(ctx, domain.DedupRecord{
		SentAt:     sentAt,
		MedicineID: key.MedicineID,
		Time:       key.Time,
	})
	if err != nil {
		return fmt.Errorf("failed to write dedup record %s: %w", key.ID(), err)
	}
	return nil
}
