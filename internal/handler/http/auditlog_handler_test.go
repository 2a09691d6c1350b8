package httphandler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauditlog "github.com/gatehouse-io/gatehouse/internal/application/auditlog"
	"github.com/gatehouse-io/gatehouse/internal/domain/auditlog"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
	httphandler "github.com/gatehouse-io/gatehouse/internal/handler/http"
	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

type stubListEntriesUC struct {
	result appauditlog.ListResult
	err    error
	query  appauditlog.ListEntriesQuery
}

func (s *stubListEntriesUC) Execute(_ context.Context, query appauditlog.ListEntriesQuery) (appauditlog.ListResult, error) {
	s.query = query
	return s.result, s.err
}

type stubCountEntriesUC struct {
	result appauditlog.CountResult
	err    error
	query  appauditlog.CountEntriesQuery
}

func (s *stubCountEntriesUC) Execute(_ context.Context, query appauditlog.CountEntriesQuery) (appauditlog.CountResult, error) {
	s.query = query
	return s.result, s.err
}

type stubDeleteBatchUC struct {
	result appauditlog.DeleteBatchResult
	err    error
	cmd    appauditlog.DeleteLogsBatchCommand
}

func (s *stubDeleteBatchUC) Execute(_ context.Context, cmd appauditlog.DeleteLogsBatchCommand) (appauditlog.DeleteBatchResult, error) {
	s.cmd = cmd
	return s.result, s.err
}

func newAuditLogHandler() (*httphandler.AuditLogHandler, *stubListEntriesUC, *stubCountEntriesUC, *stubDeleteBatchUC) {
	listUC := &stubListEntriesUC{}
	countUC := &stubCountEntriesUC{}
	deleteUC := &stubDeleteBatchUC{}
	return httphandler.NewAuditLogHandler(listUC, countUC, deleteUC), listUC, countUC, deleteUC
}

func newAuditEntry(tenantID uuid.UUID) *auditlog.Entry {
	return auditlog.Reconstruct(
		uuid.NewUUID(), tenantID, uuid.NewUUID(),
		"permission_request.approved", "permission_request", uuid.NewUUID().String(),
		map[string]string{"note": "ok"},
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	)
}

func TestAuditLogHandler_List(t *testing.T) {
	t.Run("with filters", func(t *testing.T) {
		tenantID := uuid.NewUUID()

		h, listUC, _, _ := newAuditLogHandler()
		listUC.result = appauditlog.ListResult{
			Entries: []*auditlog.Entry{newAuditEntry(tenantID)},
			Total:   11,
			Offset:  0,
			Limit:   50,
		}

		c, rec := newJSONContext(http.MethodGet,
			"/audit-logs?action=permission_request.approved&from=2025-06-01T00:00:00Z&limit=50", "")
		c.Set(string(middleware.ContextKeyTenantID), tenantID)

		require.NoError(t, h.List(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, tenantID, listUC.query.TenantID)
		assert.Equal(t, "permission_request.approved", listUC.query.Filter.Action)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), listUC.query.Filter.From)
		assert.Contains(t, rec.Body.String(), `"total":11`)
	})

	t.Run("invalid from timestamp", func(t *testing.T) {
		h, _, _, _ := newAuditLogHandler()

		c, rec := newJSONContext(http.MethodGet, "/audit-logs?from=yesterday", "")
		c.Set(string(middleware.ContextKeyTenantID), uuid.NewUUID())

		require.NoError(t, h.List(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_FILTER")
	})
}

func TestAuditLogHandler_Count(t *testing.T) {
	tenantID := uuid.NewUUID()

	h, _, countUC, _ := newAuditLogHandler()
	countUC.result = appauditlog.CountResult{Count: 11}

	c, rec := newJSONContext(http.MethodGet, "/audit-logs/count?action=user.deactivated", "")
	c.Set(string(middleware.ContextKeyTenantID), tenantID)

	require.NoError(t, h.Count(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user.deactivated", countUC.query.Filter.Action)
	assert.Contains(t, rec.Body.String(), `"count":11`)
}

func TestAuditLogHandler_DeleteBatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		firstID := uuid.NewUUID()
		secondID := uuid.NewUUID()

		h, _, _, deleteUC := newAuditLogHandler()
		deleteUC.result = appauditlog.DeleteBatchResult{DeletedCount: 2}

		c, rec := newJSONContext(http.MethodPost, "/admin/audit-logs/delete-batch",
			`{"entry_ids":["`+firstID.String()+`","`+secondID.String()+`"]}`)

		require.NoError(t, h.DeleteBatch(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, deleteUC.cmd.EntryIDs, 2)
		assert.Contains(t, rec.Body.String(), `"deleted_count":2`)
	})

	t.Run("validation error", func(t *testing.T) {
		h, _, _, deleteUC := newAuditLogHandler()
		deleteUC.err = validationFailure("entry_ids", "must be valid UUIDs")

		c, rec := newJSONContext(http.MethodPost, "/admin/audit-logs/delete-batch",
			`{"entry_ids":["nope"]}`)

		require.NoError(t, h.DeleteBatch(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	})
}
