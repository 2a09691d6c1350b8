package auth

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
)

// LogoutFailureReason is returned when the refresh token to revoke is
// not in the store, whether it never existed or was revoked earlier.
const LogoutFailureReason = "Token not found or already revoked"

// LogoutUseCase revokes a refresh token, ending the session it backs.
type LogoutUseCase struct {
	tokenStore TokenStore
	provider   ProviderClient
}

// NewLogoutUseCase creates a new LogoutUseCase.
func NewLogoutUseCase(tokenStore TokenStore, provider ProviderClient) *LogoutUseCase {
	return &LogoutUseCase{
		tokenStore: tokenStore,
		provider:   provider,
	}
}

// Execute revokes the token in the store and, if it was present, at
// the provider. A token that is absent from the store yields a failed
// result rather than an error: the caller asked to end a session that
// no longer exists.
func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) (LogoutResult, error) {
	if err := uc.validate(cmd); err != nil {
		return LogoutResult{}, fmt.Errorf("validation failed: %w", err)
	}

	revoked, err := uc.tokenStore.RevokeRefreshToken(ctx, cmd.RefreshToken)
	if err != nil {
		return LogoutResult{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !revoked {
		return LogoutResult{CommandOutcome: appcore.Fail(LogoutFailureReason)}, nil
	}

	// Provider-side revocation is best effort. The session is already
	// dead locally, so a provider hiccup must not fail the logout.
	if uc.provider != nil {
		_ = uc.provider.RevokeToken(ctx, cmd.RefreshToken)
	}

	return LogoutResult{CommandOutcome: appcore.Succeed()}, nil
}

func (uc *LogoutUseCase) validate(cmd LogoutCommand) error {
	return appcore.ValidateRequired("refreshToken", cmd.RefreshToken)
}
