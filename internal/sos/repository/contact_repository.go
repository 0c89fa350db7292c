package repository

import (
	"context"
	"fmt"

	"elderlyze-backend/internal/sos/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// ContactRepository reads a user's emergency contact list.
type ContactRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Contact, error)
}

type contactRepository struct {
	db *firestore.Client
}

func NewContactRepository(db *firestore.Client) ContactRepository {
	return &contactRepository{db: db}
}

// ListByUser returns the user's contacts in stored document order.
func (r *contactRepository) ListByUser(ctx context.Context, userID string) ([]domain.Contact, error) {
	iter := r.db.Collection("users").Doc(userID).Collection("sosContacts").Documents(ctx)
	defer iter.Stop()

	var contacts []domain.Contact
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list contacts for user %s: %w", userID, err)
		}

		var c domain.Contact
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("failed to decode contact %s: %w", doc.Ref.ID, err)
		}
		c.ID = doc.Ref.ID
		contacts = append(contacts, c)
	}
	return contacts, nil
}
