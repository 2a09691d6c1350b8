package auth

import (
	"context"
	"time"

	"github.com/gatehouse-io/gatehouse/internal/domain/user"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// TokenSet is the provider's response to a code exchange or refresh.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// UserInfo is the identity profile returned by the provider.
type UserInfo struct {
	Subject           string
	PreferredUsername string
	Email             string
	Name              string
}

// ProviderClient talks to the external identity provider.
// Declared on the consumer side.
type ProviderClient interface {
	// ExchangeCode trades an authorization code for a token set.
	ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenSet, error)

	// RefreshToken rotates a token set using a refresh token.
	RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error)

	// RevokeToken revokes a refresh token at the provider.
	RevokeToken(ctx context.Context, refreshToken string) error

	// GetUserInfo fetches the profile behind an access token.
	GetUserInfo(ctx context.Context, accessToken string) (*UserInfo, error)
}

// TokenStore tracks issued refresh tokens so they can be revoked.
// Declared on the consumer side.
type TokenStore interface {
	// StoreRefreshToken records a refresh token for a user with a TTL.
	StoreRefreshToken(ctx context.Context, refreshToken string, userID uuid.UUID, ttl time.Duration) error

	// LookupRefreshToken returns the user a stored token belongs to.
	LookupRefreshToken(ctx context.Context, refreshToken string) (uuid.UUID, error)

	// RevokeRefreshToken removes a stored token. The bool reports
	// whether the token was present before removal.
	RevokeRefreshToken(ctx context.Context, refreshToken string) (bool, error)

	// RevokeAllForUser removes every stored token for a user.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// UserRepository is the slice of user storage login needs.
// Declared on the consumer side.
type UserRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (*user.User, error)
	Save(ctx context.Context, usr *user.User) error
}
