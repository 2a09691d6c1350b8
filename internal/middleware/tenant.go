package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatehouse-io/gatehouse/internal/domain/tenant"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// Tenant context keys.
const (
	// ContextKeyTenantID is the context key for tenant ID.
	ContextKeyTenantID contextKey = "tenant_id"

	// ContextKeyTenantRole is the context key for the user's role in the tenant.
	ContextKeyTenantRole contextKey = "tenant_role"
)

// Tenant errors.
var (
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrNotTenantMember  = errors.New("user is not a member of this tenant")
	ErrInvalidTenantID  = errors.New("invalid tenant ID")
	ErrTenantIDRequired = errors.New("tenant ID is required")
)

// TenantAccessChecker defines the interface for checking tenant access.
type TenantAccessChecker interface {
	// GetMembership returns the user's membership in a tenant, or
	// errs.ErrNotFound when the user is not a member.
	GetMembership(ctx context.Context, tenantID, userID uuid.UUID) (*tenant.Member, error)

	// TenantExists checks if a tenant exists.
	TenantExists(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

// TenantConfig holds configuration for the tenant access middleware.
type TenantConfig struct {
	// Logger is the structured logger for tenant access events.
	Logger *slog.Logger

	// AccessChecker checks tenant access.
	AccessChecker TenantAccessChecker

	// TenantIDParam is the name of the path parameter containing the tenant ID.
	// Default is "tenant_id".
	TenantIDParam string

	// AllowSystemAdmin allows system administrators to bypass tenant membership checks.
	AllowSystemAdmin bool
}

// DefaultTenantConfig returns a TenantConfig with sensible defaults.
func DefaultTenantConfig() TenantConfig {
	return TenantConfig{
		Logger:           slog.Default(),
		TenantIDParam:    "tenant_id",
		AllowSystemAdmin: true,
	}
}

// TenantAccess returns a middleware that verifies tenant membership.
func TenantAccess(config TenantConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.TenantIDParam == "" {
		config.TenantIDParam = "tenant_id"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tenantIDStr := c.Param(config.TenantIDParam)
			if tenantIDStr == "" {
				return respondTenantError(c, ErrTenantIDRequired)
			}

			tenantID, err := uuid.ParseUUID(tenantIDStr)
			if err != nil {
				config.Logger.Warn("invalid tenant ID",
					slog.String("tenant_id", tenantIDStr),
					slog.String("error", err.Error()),
				)
				return respondTenantError(c, ErrInvalidTenantID)
			}

			if config.AccessChecker == nil {
				config.Logger.Error("tenant access checker not configured")
				return respondTenantError(c, ErrTenantNotFound)
			}

			if config.AllowSystemAdmin && IsSystemAdmin(c) {
				return adminTenantAccess(c, next, config, tenantID)
			}

			userID := GetUserID(c)
			if userID.IsZero() {
				config.Logger.Warn("user ID not found in context")
				return respondAuthError(c, ErrInsufficientPermissions)
			}

			member, err := config.AccessChecker.GetMembership(c.Request().Context(), tenantID, userID)
			if err != nil || member == nil {
				config.Logger.Debug("tenant membership check failed",
					slog.String("tenant_id", tenantID.String()),
					slog.String("user_id", userID.String()),
				)
				return respondTenantError(c, ErrNotTenantMember)
			}

			c.Set(string(ContextKeyTenantID), tenantID)
			c.Set(string(ContextKeyTenantRole), member.Role())

			config.Logger.Debug("tenant access granted",
				slog.String("tenant_id", tenantID.String()),
				slog.String("user_id", userID.String()),
				slog.String("role", string(member.Role())),
			)

			return next(c)
		}
	}
}

// adminTenantAccess grants a system admin access to any existing tenant.
func adminTenantAccess(c echo.Context, next echo.HandlerFunc, config TenantConfig, tenantID uuid.UUID) error {
	exists, err := config.AccessChecker.TenantExists(c.Request().Context(), tenantID)
	if err != nil {
		config.Logger.Error("failed to check tenant existence",
			slog.String("tenant_id", tenantID.String()),
			slog.String("error", err.Error()),
		)
		return respondTenantError(c, ErrTenantNotFound)
	}
	if !exists {
		return respondTenantError(c, ErrTenantNotFound)
	}

	c.Set(string(ContextKeyTenantID), tenantID)
	c.Set(string(ContextKeyTenantRole), tenant.RoleAdmin)

	return next(c)
}

// respondTenantError sends a tenant-related error response.
func respondTenantError(c echo.Context, err error) error {
	code := "TENANT_ERROR"
	message := "Tenant error"
	status := http.StatusForbidden

	switch {
	case errors.Is(err, ErrTenantNotFound):
		code = "TENANT_NOT_FOUND"
		message = "Tenant not found"
		status = http.StatusNotFound
	case errors.Is(err, ErrNotTenantMember):
		code = "NOT_TENANT_MEMBER"
		message = "You are not a member of this tenant"
		status = http.StatusForbidden
	case errors.Is(err, ErrInvalidTenantID):
		code = "INVALID_TENANT_ID"
		message = "Invalid tenant ID format"
		status = http.StatusBadRequest
	case errors.Is(err, ErrTenantIDRequired):
		code = "TENANT_ID_REQUIRED"
		message = "Tenant ID is required"
		status = http.StatusBadRequest
	}

	return c.JSON(status, map[string]any{
		"success": false,
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// GetTenantID extracts the tenant ID from the echo context.
func GetTenantID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(string(ContextKeyTenantID)).(uuid.UUID); ok {
		return id
	}
	return uuid.UUID("")
}

// GetTenantRole extracts the user's tenant role from the echo context.
func GetTenantRole(c echo.Context) tenant.Role {
	if role, ok := c.Get(string(ContextKeyTenantRole)).(tenant.Role); ok {
		return role
	}
	return tenant.Role("")
}

// RequireTenantReviewer returns a middleware that requires a role
// allowed to review permission requests.
func RequireTenantReviewer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !GetTenantRole(c).CanReview() {
				return respondAuthError(c, ErrInsufficientPermissions)
			}
			return next(c)
		}
	}
}
