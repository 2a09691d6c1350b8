package appcore

import (
	"context"
	"errors"

	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	tenantIDKey  contextKey = "tenantID"
	requestIDKey contextKey = "requestID"
)

// Context extraction errors.
var (
	ErrUserIDNotFound   = errors.New("user ID not found in context")
	ErrTenantIDNotFound = errors.New("tenant ID not found in context")
)

// GetUserID extracts the authenticated user's ID from the context.
func GetUserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		return "", ErrUserIDNotFound
	}
	return userID, nil
}

// WithUserID stores the authenticated user's ID in the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetTenantID extracts the tenant scope from the context.
func GetTenantID(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := ctx.Value(tenantIDKey).(uuid.UUID)
	if !ok {
		return "", ErrTenantIDNotFound
	}
	return tenantID, nil
}

// WithTenantID stores the tenant scope in the context.
func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// GetRequestID extracts the request ID from the context, empty if unset.
func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(requestIDKey).(string)
	if !ok {
		return ""
	}
	return requestID
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
