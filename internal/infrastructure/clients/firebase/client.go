package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/satisfaction-feedback/pkg/config"
	"google.golang.org/api/option"
)

// Client bundles the Firebase Admin SDK services the application uses.
// Firestore is optional: when it fails to initialize, Auth still works.
type Client struct {
	auth      *auth.Client
	firestore *firestore.Client
}

// NewClient initializes the Firebase app from a service account file, or
// from application default credentials when no file is configured.
func NewClient(ctx context.Context, cfg *config.FirebaseConfig, withFirestore bool) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
	}

	client := &Client{auth: authClient}

	if withFirestore {
		fs, err := app.Firestore(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Firestore unavailable; continuing without it")
		} else {
			client.firestore = fs
		}
	}

	return client, nil
}

// Auth returns the Firebase Auth client
func (c *Client) Auth() *auth.Client {
	return c.auth
}

// Firestore returns the Firestore client, or nil when unavailable
func (c *Client) Firestore() *firestore.Client {
	return c.firestore
}

// Close releases the Firestore connection
func (c *Client) Close() error {
	if c.firestore != nil {
		return c.firestore.Close()
	}
	return nil
}
