package domain

import (
	"fmt"
	"time"
)

// DedupKey identifies one slot occurrence: a (user, medicine, date, time)
// tuple scoped to a single calendar date in the item's timezone.
type DedupKey struct {
	UserID     string
	MedicineID string
	Date       string // YYYY-MM-DD in the item's zone
	Time       string // HH:MM
}

func (k DedupKey) ID() string {
	return fmt.Sprintf("%s:%s:%s:%s", k.UserID, k.MedicineID, k.Date, k.Time)
}

// DedupRecord marks a slot occurrence as already fired. Presence alone
// suppresses a duplicate send; the fields are advisory.
type DedupRecord struct {
	SentAt     time.Time `firestore:"sentAt"`
	MedicineID string    `firestore:"medicineId"`
	Time       string    `firestore:"time"`
}
