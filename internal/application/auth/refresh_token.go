package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
)

// RefreshTokenUseCase rotates an access token using a stored refresh
// token. The old refresh token is revoked and the new one stored, so a
// token can be used for rotation exactly once.
type RefreshTokenUseCase struct {
	provider   ProviderClient
	tokenStore TokenStore
	refreshTTL time.Duration
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase.
func NewRefreshTokenUseCase(
	provider ProviderClient,
	tokenStore TokenStore,
	refreshTTL time.Duration,
) *RefreshTokenUseCase {
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}
	return &RefreshTokenUseCase{
		provider:   provider,
		tokenStore: tokenStore,
		refreshTTL: refreshTTL,
	}
}

// Execute validates the refresh token against the store, rotates it at
// the provider and swaps the stored token for the new one.
func (uc *RefreshTokenUseCase) Execute(
	ctx context.Context,
	cmd RefreshTokenCommand,
) (*RefreshResult, error) {
	if err := uc.validate(cmd); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	userID, err := uc.tokenStore.LookupRefreshToken(ctx, cmd.RefreshToken)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	tokens, err := uc.provider.RefreshToken(ctx, cmd.RefreshToken)
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	if _, revokeErr := uc.tokenStore.RevokeRefreshToken(ctx, cmd.RefreshToken); revokeErr != nil {
		return nil, fmt.Errorf("failed to revoke old refresh token: %w", revokeErr)
	}

	newRefresh := tokens.RefreshToken
	if newRefresh == "" {
		// Some providers do not rotate the refresh token.
		newRefresh = cmd.RefreshToken
	}
	if storeErr := uc.tokenStore.StoreRefreshToken(ctx, newRefresh, userID, uc.refreshTTL); storeErr != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", storeErr)
	}

	return &RefreshResult{
		AccessToken:  tokens.AccessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (uc *RefreshTokenUseCase) validate(cmd RefreshTokenCommand) error {
	return appcore.ValidateRequired("refreshToken", cmd.RefreshToken)
}
