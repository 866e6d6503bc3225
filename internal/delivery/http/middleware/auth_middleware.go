// Package middleware contains the Echo middlewares for the HTTP delivery.
package middleware

import (
	"log/slog"
	"strings"

	"soko/internal/delivery/http/response"
	"soko/internal/domain/entity"
	"soko/internal/domain/policy"
	"soko/internal/domain/service"
	"soko/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const keyActor = "actor"

// AuthMiddleware verifies bearer tokens against the external identity
// provider and attaches the resulting actor to the request.
type AuthMiddleware struct {
	verifier service.IdentityVerifier
	userUC   usecase.UserUsecase
	logger   *slog.Logger
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Verifier service.IdentityVerifier
	UserUC   usecase.UserUsecase
	Logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: params.Verifier,
		userUC:   params.UserUC,
		logger:   params.Logger,
	}
}

// Authenticate requires a valid bearer token. The verified identity is
// synced into the local user store so the actor carries its effective role.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing or malformed")
		}

		return m.attachActor(c, next, token)
	}
}

// OptionalAuthenticate attaches an actor when a bearer token is present and
// lets anonymous requests through untouched. A token that is present but
// invalid is still rejected rather than silently downgraded.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return next(c)
		}

		token, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is malformed")
		}

		return m.attachActor(c, next, token)
	}
}

func (m *AuthMiddleware) attachActor(c echo.Context, next echo.HandlerFunc, token string) error {
	ctx := c.Request().Context()

	identity, err := m.verifier.Verify(ctx, token)
	if err != nil {
		m.logger.Debug("Token verification failed", slog.Any("error", err))

		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
	}

	user, err := m.userUC.Sync(ctx, identity)
	if err != nil {
		m.logger.Error("Failed to sync user from identity",
			slog.String("provider_id", identity.ProviderID),
			slog.Any("error", err),
		)

		return response.InternalServerError(c, "INTERNAL_ERROR", "Failed to resolve user")
	}

	c.Set(keyActor, policy.Actor{ID: user.ID, Role: user.Role})
	c.Set("user", user)

	return next(c)
}

// GetActor returns the actor attached by the auth middlewares. Requests
// that never passed authentication yield the anonymous actor.
func GetActor(c echo.Context) policy.Actor {
	if actor, ok := c.Get(keyActor).(policy.Actor); ok {
		return actor
	}

	return policy.Actor{}
}

// GetUser returns the synced user record for the authenticated request.
func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get("user").(*entity.User)

	return user, ok
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return "", false
	}

	return token, true
}
