package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/tenant"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

// mockTenantAccessChecker is a mock implementation of TenantAccessChecker.
type mockTenantAccessChecker struct {
	members map[string]*tenant.Member
	tenants map[uuid.UUID]bool
}

func newMockTenantAccessChecker() *mockTenantAccessChecker {
	return &mockTenantAccessChecker{
		members: make(map[string]*tenant.Member),
		tenants: make(map[uuid.UUID]bool),
	}
}

func (m *mockTenantAccessChecker) addMember(tenantID, userID uuid.UUID, role tenant.Role) {
	m.tenants[tenantID] = true
	m.members[tenantID.String()+":"+userID.String()] = tenant.ReconstructMember(tenantID, userID, role, time.Time{})
}

func (m *mockTenantAccessChecker) GetMembership(
	_ context.Context,
	tenantID, userID uuid.UUID,
) (*tenant.Member, error) {
	member, ok := m.members[tenantID.String()+":"+userID.String()]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return member, nil
}

func (m *mockTenantAccessChecker) TenantExists(_ context.Context, tenantID uuid.UUID) (bool, error) {
	return m.tenants[tenantID], nil
}

func newTenantTestServer(checker middleware.TenantAccessChecker, userID uuid.UUID, isAdmin bool) *echo.Echo {
	e := echo.New()
	e.GET("/tenants/:tenant_id/resource", func(c echo.Context) error {
		return c.String(http.StatusOK, string(middleware.GetTenantRole(c)))
	}, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(string(middleware.ContextKeyUserID), userID)
			c.Set(string(middleware.ContextKeyIsSystemAdmin), isAdmin)
			return next(c)
		}
	}, middleware.TenantAccess(middleware.TenantConfig{
		AccessChecker:    checker,
		AllowSystemAdmin: true,
	}))
	return e
}

func TestTenantAccess_MemberAllowed(t *testing.T) {
	tenantID := uuid.NewUUID()
	userID := uuid.NewUUID()

	checker := newMockTenantAccessChecker()
	checker.addMember(tenantID, userID, tenant.RoleMember)

	e := newTenantTestServer(checker, userID, false)

	req := httptest.NewRequest(http.MethodGet, "/tenants/"+tenantID.String()+"/resource", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "member", rec.Body.String())
}

func TestTenantAccess_NonMemberForbidden(t *testing.T) {
	tenantID := uuid.NewUUID()

	checker := newMockTenantAccessChecker()
	checker.tenants[tenantID] = true

	e := newTenantTestServer(checker, uuid.NewUUID(), false)

	req := httptest.NewRequest(http.MethodGet, "/tenants/"+tenantID.String()+"/resource", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_TENANT_MEMBER")
}

func TestTenantAccess_InvalidTenantID(t *testing.T) {
	e := newTenantTestServer(newMockTenantAccessChecker(), uuid.NewUUID(), false)

	req := httptest.NewRequest(http.MethodGet, "/tenants/not-a-uuid/resource", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TENANT_ID")
}

func TestTenantAccess_SystemAdminBypass(t *testing.T) {
	tenantID := uuid.NewUUID()

	checker := newMockTenantAccessChecker()
	checker.tenants[tenantID] = true

	e := newTenantTestServer(checker, uuid.NewUUID(), true)

	req := httptest.NewRequest(http.MethodGet, "/tenants/"+tenantID.String()+"/resource", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())
}

func TestTenantAccess_SystemAdminUnknownTenant(t *testing.T) {
	e := newTenantTestServer(newMockTenantAccessChecker(), uuid.NewUUID(), true)

	req := httptest.NewRequest(http.MethodGet, "/tenants/"+uuid.NewUUID().String()+"/resource", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequireTenantReviewer(t *testing.T) {
	handler := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }

	t.Run("admin can review", func(t *testing.T) {
		e := echo.New()
		e.GET("/review", handler, func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(string(middleware.ContextKeyTenantRole), tenant.RoleAdmin)
				return next(c)
			}
		}, middleware.RequireTenantReviewer())

		req := httptest.NewRequest(http.MethodGet, "/review", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain member cannot review", func(t *testing.T) {
		e := echo.New()
		e.GET("/review", handler, func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(string(middleware.ContextKeyTenantRole), tenant.RoleMember)
				return next(c)
			}
		}, middleware.RequireTenantReviewer())

		req := httptest.NewRequest(http.MethodGet, "/review", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
