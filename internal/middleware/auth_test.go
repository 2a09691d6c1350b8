package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

// mockTokenValidator is a mock implementation of TokenValidator for testing.
type mockTokenValidator struct {
	claims *middleware.TokenClaims
	err    error
}

func (m *mockTokenValidator) ValidateToken(_ context.Context, _ string) (*middleware.TokenClaims, error) {
	return m.claims, m.err
}

// mockUserResolver is a mock implementation of UserResolver for testing.
type mockUserResolver struct {
	resolved middleware.ResolvedUser
	err      error
}

func (m *mockUserResolver) ResolveUser(_ context.Context, _ string) (middleware.ResolvedUser, error) {
	return m.resolved, m.err
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestDefaultAuthConfig(t *testing.T) {
	config := middleware.DefaultAuthConfig()

	assert.NotNil(t, config.Logger)
	assert.Contains(t, config.SkipPaths, "/health")
	assert.Contains(t, config.SkipPaths, "/ready")
	assert.Contains(t, config.SkipPaths, "/api/v1/auth/login")
	assert.Contains(t, config.SkipPaths, "/api/v1/auth/refresh")
}

func TestAuth_MissingAuthorizationHeader(t *testing.T) {
	e := echo.New()
	e.Use(middleware.Auth(middleware.AuthConfig{
		TokenValidator: &mockTokenValidator{claims: &middleware.TokenClaims{}},
	}))
	e.GET("/protected", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing authorization header")
}

func TestAuth_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	e.Use(middleware.Auth(middleware.AuthConfig{
		TokenValidator: &mockTokenValidator{claims: &middleware.TokenClaims{}},
	}))
	e.GET("/protected", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic abc123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid authorization header format")
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := echo.New()
	e.Use(middleware.Auth(middleware.AuthConfig{
		TokenValidator: &mockTokenValidator{err: middleware.ErrTokenExpired},
	}))
	e.GET("/protected", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer expired-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestAuth_SkipPaths(t *testing.T) {
	e := echo.New()
	e.Use(middleware.Auth(middleware.AuthConfig{
		TokenValidator: &mockTokenValidator{err: middleware.ErrInvalidToken},
		SkipPaths:      []string{"/public"},
	}))
	e.GET("/public", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_ResolvesInternalUser(t *testing.T) {
	userID := uuid.NewUUID()

	var seenUserID uuid.UUID
	var seenAdmin bool

	e := echo.New()
	e.Use(middleware.Auth(middleware.AuthConfig{
		TokenValidator: &mockTokenValidator{
			claims: &middleware.TokenClaims{ExternalUserID: "sub-1", Username: "alice"},
		},
		UserResolver: &mockUserResolver{
			resolved: middleware.ResolvedUser{ID: userID, IsSystemAdmin: true},
		},
	}))
	e.GET("/protected", func(c echo.Context) error {
		seenUserID = middleware.GetUserID(c)
		seenAdmin = middleware.IsSystemAdmin(c)
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer valid-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, seenUserID)
	assert.True(t, seenAdmin)
}

func TestAuth_ResolverFailure(t *testing.T) {
	e := echo.New()
	e.Use(middleware.Auth(middleware.AuthConfig{
		TokenValidator: &mockTokenValidator{
			claims: &middleware.TokenClaims{ExternalUserID: "sub-1"},
		},
		UserResolver: &mockUserResolver{err: middleware.ErrUserNotFound},
	}))
	e.GET("/protected", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer valid-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "USER_NOT_FOUND")
}

func TestRequireSystemAdmin(t *testing.T) {
	t.Run("allows system admin", func(t *testing.T) {
		e := echo.New()
		e.GET("/admin", okHandler, func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(string(middleware.ContextKeyIsSystemAdmin), true)
				return next(c)
			}
		}, middleware.RequireSystemAdmin())

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects regular user", func(t *testing.T) {
		e := echo.New()
		e.GET("/admin", okHandler, middleware.RequireSystemAdmin())

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
