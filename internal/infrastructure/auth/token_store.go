// Package auth holds the Redis-backed refresh token store.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

const (
	defaultKeyPrefix = "auth:refresh_token:"
	userSetPrefix    = "auth:user_tokens:"
)

// TokenStore tracks issued refresh tokens in Redis. Keys map a token
// hash to the owning user ID; a per-user set supports revoke-all.
// Tokens are hashed so a Redis dump does not leak usable credentials.
type TokenStore struct {
	client    *redis.Client
	keyPrefix string
}

// TokenStoreConfig contains configuration for TokenStore.
type TokenStoreConfig struct {
	Client    *redis.Client
	KeyPrefix string
}

// NewTokenStore creates a new Redis-based token store.
func NewTokenStore(cfg TokenStoreConfig) *TokenStore {
	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}

	return &TokenStore{
		client:    cfg.Client,
		keyPrefix: keyPrefix,
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *TokenStore) tokenKey(token string) string {
	return s.keyPrefix + hashToken(token)
}

func (s *TokenStore) userSetKey(userID uuid.UUID) string {
	return userSetPrefix + userID.String()
}

// StoreRefreshToken records a refresh token for a user with the given
// TTL.
func (s *TokenStore) StoreRefreshToken(
	ctx context.Context,
	refreshToken string,
	userID uuid.UUID,
	ttl time.Duration,
) error {
	if refreshToken == "" {
		return errors.New("refreshToken is required")
	}
	if userID.IsZero() {
		return errors.New("userID is required")
	}

	key := s.tokenKey(refreshToken)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, userID.String(), ttl)
	pipe.SAdd(ctx, s.userSetKey(userID), key)
	pipe.Expire(ctx, s.userSetKey(userID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// LookupRefreshToken returns the user a stored token belongs to, or
// errs.ErrNotFound.
func (s *TokenStore) LookupRefreshToken(ctx context.Context, refreshToken string) (uuid.UUID, error) {
	if refreshToken == "" {
		return "", errors.New("refreshToken is required")
	}

	value, err := s.client.Get(ctx, s.tokenKey(refreshToken)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errs.ErrNotFound
		}
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}

	userID, err := uuid.ParseUUID(value)
	if err != nil {
		return "", fmt.Errorf("corrupt token record: %w", err)
	}
	return userID, nil
}

// RevokeRefreshToken removes a stored token. The bool reports whether
// the token was present before removal; revoking an absent token is
// not an error.
func (s *TokenStore) RevokeRefreshToken(ctx context.Context, refreshToken string) (bool, error) {
	if refreshToken == "" {
		return false, errors.New("refreshToken is required")
	}

	key := s.tokenKey(refreshToken)

	// Fetch the owner first so the per-user set stays consistent.
	owner, err := s.client.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	deleted, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if deleted == 0 {
		return false, nil
	}

	if userID, parseErr := uuid.ParseUUID(owner); parseErr == nil {
		_ = s.client.SRem(ctx, s.userSetKey(userID), key).Err()
	}

	return true, nil
}

// RevokeAllForUser removes every stored token for a user and returns
// how many were revoked.
func (s *TokenStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID.IsZero() {
		return 0, errors.New("userID is required")
	}

	setKey := s.userSetKey(userID)
	keys, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list user tokens: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	deleted, err := s.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	_ = s.client.Del(ctx, setKey).Err()

	return int(deleted), nil
}
