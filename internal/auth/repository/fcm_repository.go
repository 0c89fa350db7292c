package repository

import (
	"context"
	"fmt"
	"time"

	authdomain "elderlyze-backend/internal/auth/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// TokenRepository defines the interface for FCM device token operations
type TokenRepository interface {
	SaveToken(ctx context.Context, userID, token, platform string) error
	GetTokensByUserID(ctx context.Context, userID string) ([]authdomain.FCMToken, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

// tokenRepository implements TokenRepository over Firestore
type tokenRepository struct {
	db *firestore.Client
}

func NewTokenRepository(db *firestore.Client) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) tokens(userID string) *firestore.CollectionRef {
	return r.db.Collection("users").Doc(userID).Collection("fcmTokens")
}

// SaveToken registers or refreshes a device token. The token string is the
// document ID, so re-registering the same token overwrites in place.
func (r *tokenRepository) SaveToken(ctx context.Context, userID, token, platform string) error {
	now := time.Now()
	_, err := r.tokens(userID).Doc(token).Set(ctx, authdomain.FCMToken{
		Token:     token,
		Platform:  platform,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to save token for user %s: %w", userID, err)
	}
	return nil
}

// GetTokensByUserID returns all device tokens registered for a user.
func (r *tokenRepository) GetTokensByUserID(ctx context.Context, userID string) ([]authdomain.FCMToken, error) {
	iter := r.tokens(userID).Documents(ctx)
	defer iter.Stop()

	var tokens []authdomain.FCMToken
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list tokens for user %s: %w", userID, err)
		}

		var t authdomain.FCMToken
		if err := doc.DataTo(&t); err != nil {
			return nil, fmt.Errorf("failed to decode token doc %s: %w", doc.Ref.ID, err)
		}
		if t.Token == "" {
			// Older clients stored the token only as the document ID.
			t.Token = doc.Ref.ID
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// DeleteToken removes a specific device token.
func (r *tokenRepository) DeleteToken(ctx context.Context, userID, token string) error {
	if _, err := r.tokens(userID).Doc(token).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete token for user %s: %w", userID, err)
	}
	return nil
}
