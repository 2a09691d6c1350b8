package auth

import "errors"

// Auth use case errors.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid or expired")
	ErrUserInactive        = errors.New("user account is deactivated")
)
