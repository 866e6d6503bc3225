// Package identity provides token verification backed by external identity
// providers.
package identity

import (
	"context"
	"log/slog"

	"soko/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// firebaseVerifier implements IdentityVerifier on Firebase Authentication.
type firebaseVerifier struct {
	client *auth.Client
	logger *slog.Logger
}

// NewFirebaseVerifier initializes the Firebase app and its auth client.
// credentialsPath may be empty, in which case application default
// credentials apply.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsPath string, logger *slog.Logger) (service.IdentityVerifier, error) {
	firebaseConfig := &firebase.Config{ProjectID: projectID}

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, firebaseConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	logger.Info("Firebase identity verifier initialized", slog.String("project_id", projectID))

	return &firebaseVerifier{client: client, logger: logger}, nil
}

// Verify validates the ID token with Firebase and extracts the profile
// claims the provider attaches.
func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*service.Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify ID token")
	}

	identity := &service.Identity{
		ProviderID: decoded.UID,
		Email:      stringClaim(decoded.Claims, "email"),
		Name:       stringClaim(decoded.Claims, "name"),
		Avatar:     stringClaim(decoded.Claims, "picture"),
	}

	return identity, nil
}

func stringClaim(claims map[string]any, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}

	return ""
}
