package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/user"
)

// DefaultRefreshTokenTTL bounds how long a stored refresh token lives.
const DefaultRefreshTokenTTL = 30 * 24 * time.Hour

// LoginUseCase exchanges an OAuth code for tokens and provisions the
// local user record on first login.
type LoginUseCase struct {
	provider   ProviderClient
	tokenStore TokenStore
	userRepo   UserRepository
	refreshTTL time.Duration
}

// NewLoginUseCase creates a new LoginUseCase.
func NewLoginUseCase(
	provider ProviderClient,
	tokenStore TokenStore,
	userRepo UserRepository,
	refreshTTL time.Duration,
) *LoginUseCase {
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}
	return &LoginUseCase{
		provider:   provider,
		tokenStore: tokenStore,
		userRepo:   userRepo,
		refreshTTL: refreshTTL,
	}
}

// Execute performs the code exchange, syncs the local user record and
// stores the refresh token for later revocation.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if err := uc.validate(cmd); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tokens, err := uc.provider.ExchangeCode(ctx, cmd.Code, cmd.RedirectURI)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	info, err := uc.provider.GetUserInfo(ctx, tokens.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	usr, err := uc.syncUser(ctx, info)
	if err != nil {
		return nil, err
	}
	if !usr.IsActive() {
		return nil, ErrUserInactive
	}

	if tokens.RefreshToken != "" {
		storeErr := uc.tokenStore.StoreRefreshToken(ctx, tokens.RefreshToken, usr.ID(), uc.refreshTTL)
		if storeErr != nil {
			return nil, fmt.Errorf("failed to store refresh token: %w", storeErr)
		}
	}

	return &LoginResult{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		User:         usr,
	}, nil
}

// syncUser finds the local record for a provider identity, creating it
// on first login and refreshing profile fields on subsequent ones.
func (uc *LoginUseCase) syncUser(ctx context.Context, info *UserInfo) (*user.User, error) {
	usr, err := uc.userRepo.FindByExternalID(ctx, info.Subject)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}

		created, createErr := user.NewUser(info.Subject, info.PreferredUsername, info.Email, info.Name)
		if createErr != nil {
			return nil, fmt.Errorf("failed to create user: %w", createErr)
		}
		if saveErr := uc.userRepo.Save(ctx, created); saveErr != nil {
			return nil, fmt.Errorf("failed to save user: %w", saveErr)
		}
		return created, nil
	}

	if usr.UpdateFromSync(info.PreferredUsername, info.Email, info.Name, usr.IsActive()) {
		if saveErr := uc.userRepo.Save(ctx, usr); saveErr != nil {
			return nil, fmt.Errorf("failed to save user: %w", saveErr)
		}
	}
	return usr, nil
}

func (uc *LoginUseCase) validate(cmd LoginCommand) error {
	if err := appcore.ValidateRequired("code", cmd.Code); err != nil {
		return err
	}
	return appcore.ValidateRequired("redirectURI", cmd.RedirectURI)
}
