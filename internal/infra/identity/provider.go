package identity

import (
	"context"
	"log/slog"

	"soko/config"
	"soko/internal/domain/constants"
	"soko/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VerifierParams holds dependencies for IdentityVerifier, injected by Fx
type VerifierParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewIdentityVerifier creates an IdentityVerifier based on configuration
func NewIdentityVerifier(params VerifierParams) (service.IdentityVerifier, error) {
	cfg := params.Config.Identity
	if cfg == nil || cfg.Provider == "" {
		return nil, errors.New("identity provider must be configured")
	}

	switch cfg.Provider {
	case constants.IdentityProviderFirebase:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for firebase provider")
		}

		return NewFirebaseVerifier(params.Ctx, cfg.ProjectID, cfg.CredentialsPath, params.Logger)

	case constants.IdentityProviderJWT:
		params.Logger.Info("Using local JWT identity verifier")

		return NewJWTVerifier(cfg.Secret)

	default:
		return nil, errors.Errorf("unknown identity provider: %s", cfg.Provider)
	}
}

// Module provides the identity FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewIdentityVerifier),
)
