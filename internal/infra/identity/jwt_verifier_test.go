package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestJWTVerifier_Verify(t *testing.T) {
	t.Parallel()

	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub":     "user-123",
		"email":   "jane@example.com",
		"name":    "Jane",
		"picture": "https://example.com/jane.png",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	identity, err := verifier.Verify(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-123", identity.ProviderID)
	assert.Equal(t, "jane@example.com", identity.Email)
	assert.Equal(t, "Jane", identity.Name)
	assert.Equal(t, "https://example.com/jane.png", identity.Avatar)
}

func TestJWTVerifier_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err = verifier.Verify(context.Background(), tokenString)
	assert.Error(t, err)
}

func TestJWTVerifier_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	tokenString := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = verifier.Verify(context.Background(), tokenString)
	assert.Error(t, err)
}

func TestJWTVerifier_RequiresSubject(t *testing.T) {
	t.Parallel()

	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = verifier.Verify(context.Background(), tokenString)
	assert.Error(t, err)
}

func TestNewJWTVerifier_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTVerifier("")
	assert.Error(t, err)
}
