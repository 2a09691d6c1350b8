package appcore

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidID        = errors.New("invalid ID")
	ErrEmptyField       = errors.New("required field is empty")

	// Authorization errors
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrRequestNotFound = errors.New("permission request not found")

	// Conflict errors
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("resource already exists")

	// Infrastructure errors
	ErrDatabaseError = errors.New("database error")
	ErrTokenStore    = errors.New("token store error")
)

// ValidationError is a failed field check. Validation failure is a data
// value, never a panic.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AuthorizationError reports a denied action.
type AuthorizationError struct {
	UserID   string
	Resource string
	Action   string
}

func (e AuthorizationError) Error() string {
	return fmt.Sprintf("user %s is not authorized to %s on %s", e.UserID, e.Action, e.Resource)
}

// NewAuthorizationError creates an AuthorizationError.
func NewAuthorizationError(userID, resource, action string) error {
	return &AuthorizationError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
	}
}

// NotFoundError reports a missing resource with its identifier.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}
