package service

import "context"

// Identity is the verified caller identity attached to an authenticated
// request, together with the profile attributes the identity provider
// exposes in its token claims.
type Identity struct {
	// ProviderID is the opaque user id issued by the identity provider.
	ProviderID string

	Email  string
	Name   string
	Avatar string
}

// IdentityVerifier validates a session token issued by the external identity
// provider and extracts the caller identity. The core trusts the returned
// identity; no further signature checks happen downstream.
type IdentityVerifier interface {
	// Verify validates the raw bearer token and returns the identity it
	// asserts, or an error when the token is missing, malformed or expired.
	Verify(ctx context.Context, token string) (*Identity, error)
}
