package identity

import (
	"context"

	"soko/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// jwtVerifier implements IdentityVerifier on locally issued HMAC tokens.
// It exists for development and integration tests where standing up a
// Firebase project is not worth it.
type jwtVerifier struct {
	secret string
}

// NewJWTVerifier is the constructor for jwtVerifier.
func NewJWTVerifier(secret string) (service.IdentityVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtVerifier{secret: secret}, nil
}

// Verify parses and validates the HMAC-signed token. The subject claim is
// the provider id; email, name and picture mirror the Firebase claim names
// so callers see the same Identity shape regardless of provider.
func (v *jwtVerifier) Verify(_ context.Context, tokenString string) (*service.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(v.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected token claims")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, errors.New("token is missing a subject")
	}

	identity := &service.Identity{
		ProviderID: subject,
		Email:      stringClaim(claims, "email"),
		Name:       stringClaim(claims, "name"),
		Avatar:     stringClaim(claims, "picture"),
	}

	return identity, nil
}
