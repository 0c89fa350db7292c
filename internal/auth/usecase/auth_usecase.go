package usecase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// Verifier resolves bearer identity tokens and user profile info against the
// external identity provider.
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
	UserInfo(ctx context.Context, uid string) (name, email string, err error)
}

// firebaseVerifier implements Verifier over the Firebase Auth admin client
type firebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) Verifier {
	return &firebaseVerifier{client: client}
}

// VerifyIDToken checks the token signature and expiry and returns the uid it
// was issued for.
func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("invalid ID token: %w", err)
	}
	return token.UID, nil
}

// UserInfo returns the display name and email recorded for uid. Either may
// be empty; callers decide the fallback.
func (v *firebaseVerifier) UserInfo(ctx context.Context, uid string) (string, string, error) {
	record, err := v.client.GetUser(ctx, uid)
	if err != nil {
		return "", "", fmt.Errorf("failed to look up user %s: %w", uid, err)
	}
	return record.DisplayName, record.Email, nil
}
