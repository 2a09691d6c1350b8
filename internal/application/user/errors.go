package user

import "errors"

var (
	// ErrUsernameAlreadyExists is returned when registering a taken username
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when registering a taken email
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrNotSystemAdmin is returned when the acting user lacks system
	// administrator rights
	ErrNotSystemAdmin = errors.New("only system administrators can perform this operation")

	// ErrUserInactive is returned when operating on a deactivated account
	ErrUserInactive = errors.New("user account is deactivated")
)
