package firebase

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Clients bundles the Firebase services the server depends on
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
	Messaging *messaging.Client
}

// New initializes the Firebase app and returns the Firestore, Auth and
// Messaging clients. An empty credentials path falls back to application
// default credentials.
func New(ctx context.Context, credentialsFile string) (*Clients, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Messaging client: %w", err)
	}

	log.Println("[Firebase] Admin SDK initialized successfully")
	return &Clients{
		Firestore: fs,
		Auth:      authClient,
		Messaging: msgClient,
	}, nil
}

// Close releases the Firestore client connection.
func (c *Clients) Close() error {
	return c.Firestore.Close()
}
