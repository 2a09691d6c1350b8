package middleware

import (
	"context"
	"errors"

	"github.com/gatehouse-io/gatehouse/internal/infrastructure/identity"
)

// IdentityValidatorAdapter adapts identity.JWTValidator to the
// middleware.TokenValidator interface.
type IdentityValidatorAdapter struct {
	validator identity.JWTValidator
}

// NewIdentityValidatorAdapter creates an adapter bridging
// identity.JWTValidator to middleware.TokenValidator.
//
// Usage:
//
//	jwtValidator, _ := identity.NewJWTValidator(config)
//	authConfig := middleware.AuthConfig{
//	    TokenValidator: middleware.NewIdentityValidatorAdapter(jwtValidator),
//	}
func NewIdentityValidatorAdapter(validator identity.JWTValidator) *IdentityValidatorAdapter {
	if validator == nil {
		panic("identity validator is required")
	}

	return &IdentityValidatorAdapter{validator: validator}
}

// ValidateToken validates an access token and returns middleware.TokenClaims.
func (a *IdentityValidatorAdapter) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	claims, err := a.validator.Validate(ctx, token)
	if err != nil {
		return nil, a.mapError(err)
	}

	return &TokenClaims{
		// The provider subject becomes ExternalUserID; the internal
		// user ID is filled in by the UserResolver.
		ExternalUserID: claims.Subject,
		Username:       claims.Username,
		Email:          claims.Email,
		ExpiresAt:      claims.ExpiresAt,
	}, nil
}

// mapError maps identity errors to middleware errors.
func (a *IdentityValidatorAdapter) mapError(err error) error {
	switch {
	case errors.Is(err, identity.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, identity.ErrInvalidToken),
		errors.Is(err, identity.ErrInvalidClaims),
		errors.Is(err, identity.ErrMissingSubject),
		errors.Is(err, identity.ErrInvalidIssuer),
		errors.Is(err, identity.ErrInvalidAudience):
		return ErrInvalidToken
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}

// Close closes the underlying identity validator.
func (a *IdentityValidatorAdapter) Close() error {
	return a.validator.Close()
}
