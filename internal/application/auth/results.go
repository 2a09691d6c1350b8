package auth

import (
	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/user"
)

// LoginResult is returned by LoginUseCase on success.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	User         *user.User
}

// RefreshResult is returned by RefreshTokenUseCase on success.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// LogoutResult reports whether the token was actually revoked.
// Revoking a token that is absent or already revoked is a failed
// outcome, not an error.
type LogoutResult struct {
	appcore.CommandOutcome
}
