// Package constants holds shared domain-level constants.
package constants

// Pub/Sub provider identifiers, matched against config.PubSub.Provider.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderNATS   = "nats"
	PubSubProviderGoogle = "google"
)

// Cache provider identifiers, matched against config.Cache.Provider.
const (
	CacheProviderNoop   = "noop"
	CacheProviderMemory = "memory"
	CacheProviderRedis  = "redis"
)

// Identity provider identifiers, matched against config.Identity.Provider.
const (
	IdentityProviderFirebase = "firebase"
	IdentityProviderJWT      = "jwt"
)
