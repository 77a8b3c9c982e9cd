// Package firebase adapts Firebase Authentication and Cloud Firestore to the
// identity and persistence interfaces the translation service consumes.
package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

const (
	translationsCollection = "translations"
	usersCollection        = "users"
)

// Clients holds the Firebase handles created at startup.
// The caller owns them and must call Close when done.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// New initialises a Firebase app from a service-account credentials file
// and returns its Auth and Firestore clients. projectID may be empty, in
// which case it is read from the credentials.
func New(ctx context.Context, credentialsFile, projectID string) (*Clients, error) {
	var conf *fb.Config
	if projectID != "" {
		conf = &fb.Config{ProjectID: projectID}
	}

	app, err := fb.NewApp(ctx, conf, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &Clients{
		Auth:      authClient,
		Firestore: fsClient,
	}, nil
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	return c.Firestore.Close()
}
