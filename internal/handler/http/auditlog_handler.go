package httphandler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	appauditlog "github.com/gatehouse-io/gatehouse/internal/application/auditlog"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/httpserver"
	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

// DeleteLogsBatchRequest lists the entry IDs to remove in one call.
type DeleteLogsBatchRequest struct {
	EntryIDs []uuid.UUID `json:"entry_ids"`
}

// DeleteLogsBatchResponse reports the number of entries actually removed.
type DeleteLogsBatchResponse struct {
	DeletedCount int `json:"deleted_count"`
}

// AuditCountResponse carries an entry count under the applied filter.
type AuditCountResponse struct {
	Count int `json:"count"`
}

// Audit log use-case ports, declared on the consumer side.
type (
	// EntryLister pages through a tenant's audit trail.
	EntryLister interface {
		Execute(ctx context.Context, query appauditlog.ListEntriesQuery) (appauditlog.ListResult, error)
	}

	// EntryCounter counts entries under a filter.
	EntryCounter interface {
		Execute(ctx context.Context, query appauditlog.CountEntriesQuery) (appauditlog.CountResult, error)
	}

	// BatchDeleter removes a set of entries in one batched call.
	BatchDeleter interface {
		Execute(ctx context.Context, cmd appauditlog.DeleteLogsBatchCommand) (appauditlog.DeleteBatchResult, error)
	}
)

// AuditLogHandler handles audit log HTTP requests.
type AuditLogHandler struct {
	listUC        EntryLister
	countUC       EntryCounter
	deleteBatchUC BatchDeleter
}

// NewAuditLogHandler creates a new AuditLogHandler.
func NewAuditLogHandler(
	listUC EntryLister,
	countUC EntryCounter,
	deleteBatchUC BatchDeleter,
) *AuditLogHandler {
	return &AuditLogHandler{
		listUC:        listUC,
		countUC:       countUC,
		deleteBatchUC: deleteBatchUC,
	}
}

// RegisterRoutes registers audit log routes with the router.
func (h *AuditLogHandler) RegisterRoutes(r *httpserver.Router) {
	tenant := r.Tenant()
	tenant.GET("/audit-logs", h.List)
	tenant.GET("/audit-logs/count", h.Count)

	// Batch deletion is destructive and stays admin-only.
	r.Admin().POST("/audit-logs/delete-batch", h.DeleteBatch)
}

// List handles GET /api/v1/tenants/:tenant_id/audit-logs.
// Accepts optional action, from, to, offset and limit query parameters.
// Timestamps use RFC 3339.
func (h *AuditLogHandler) List(c echo.Context) error {
	filter, err := parseAuditFilter(c)
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_FILTER",
			err.Error(),
		)
	}

	offset, limit := parsePagination(c)

	result, err := h.listUC.Execute(c.Request().Context(), appauditlog.ListEntriesQuery{
		TenantID: middleware.GetTenantID(c),
		Filter:   filter,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		if isValidationError(err) {
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusBadRequest,
				"VALIDATION_ERROR",
				err.Error(),
			)
		}
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondOK(c, PageDTO[AuditEntryDTO]{
		Items:  ToAuditEntryDTOs(result.Entries),
		Total:  result.Total,
		Offset: result.Offset,
		Limit:  result.Limit,
	})
}

// Count handles GET /api/v1/tenants/:tenant_id/audit-logs/count.
func (h *AuditLogHandler) Count(c echo.Context) error {
	filter, err := parseAuditFilter(c)
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_FILTER",
			err.Error(),
		)
	}

	result, err := h.countUC.Execute(c.Request().Context(), appauditlog.CountEntriesQuery{
		TenantID: middleware.GetTenantID(c),
		Filter:   filter,
	})
	if err != nil {
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondOK(c, AuditCountResponse{Count: result.Count})
}

// DeleteBatch handles POST /api/v1/admin/audit-logs/delete-batch.
func (h *AuditLogHandler) DeleteBatch(c echo.Context) error {
	var req DeleteLogsBatchRequest
	if err := c.Bind(&req); err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid request body",
		)
	}

	result, err := h.deleteBatchUC.Execute(c.Request().Context(), appauditlog.DeleteLogsBatchCommand{
		EntryIDs: req.EntryIDs,
	})
	if err != nil {
		if isValidationError(err) {
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusBadRequest,
				"VALIDATION_ERROR",
				err.Error(),
			)
		}
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondOK(c, DeleteLogsBatchResponse{DeletedCount: result.DeletedCount})
}

// parseAuditFilter reads the action/from/to query parameters.
func parseAuditFilter(c echo.Context) (appauditlog.Filter, error) {
	filter := appauditlog.Filter{Action: c.QueryParam("action")}

	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return appauditlog.Filter{}, err
		}
		filter.From = from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return appauditlog.Filter{}, err
		}
		filter.To = to
	}

	return filter, nil
}
