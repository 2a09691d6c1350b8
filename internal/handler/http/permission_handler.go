package httphandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apppermission "github.com/gatehouse-io/gatehouse/internal/application/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/httpserver"
	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

// CreatePermissionRequest represents the request creation body.
type CreatePermissionRequest struct {
	Permission    string `json:"permission"`
	Justification string `json:"justification"`
}

// ReviewPermissionRequest carries an optional reviewer note.
type ReviewPermissionRequest struct {
	Note string `json:"note"`
}

// BulkRejectRequest lists the request IDs to reject in one call.
type BulkRejectRequest struct {
	RequestIDs []uuid.UUID `json:"request_ids"`
	Note       string      `json:"note"`
}

// BulkRejectResponse reports the number of requests actually rejected.
type BulkRejectResponse struct {
	RejectedCount int `json:"rejected_count"`
}

// PendingCountResponse carries the pending request count for a tenant.
type PendingCountResponse struct {
	Count int `json:"count"`
}

// Permission use-case ports, declared on the consumer side.
type (
	// RequestCreator files a new permission request.
	RequestCreator interface {
		Execute(ctx context.Context, cmd apppermission.CreateRequestCommand) (apppermission.Result, error)
	}

	// RequestProvider fetches a single request.
	RequestProvider interface {
		Execute(ctx context.Context, query apppermission.GetRequestQuery) (apppermission.Result, error)
	}

	// RequestLister pages through a tenant's requests.
	RequestLister interface {
		Execute(ctx context.Context, query apppermission.ListRequestsQuery) (apppermission.ListResult, error)
	}

	// RequestApprover approves a pending request.
	RequestApprover interface {
		Execute(ctx context.Context, cmd apppermission.ApproveRequestCommand) (apppermission.Result, error)
	}

	// RequestRejecter rejects a pending request.
	RequestRejecter interface {
		Execute(ctx context.Context, cmd apppermission.RejectRequestCommand) (apppermission.Result, error)
	}

	// BulkRejecter rejects a set of pending requests in one batch.
	BulkRejecter interface {
		Execute(ctx context.Context, cmd apppermission.BulkRejectRequestsCommand) (apppermission.BulkRejectResult, error)
	}

	// PendingCounter counts a tenant's pending requests.
	PendingCounter interface {
		Execute(ctx context.Context, query apppermission.CountPendingQuery) (apppermission.CountResult, error)
	}
)

// PermissionHandler handles permission request HTTP requests.
type PermissionHandler struct {
	createUC       RequestCreator
	getUC          RequestProvider
	listUC         RequestLister
	approveUC      RequestApprover
	rejectUC       RequestRejecter
	bulkRejectUC   BulkRejecter
	countPendingUC PendingCounter
}

// NewPermissionHandler creates a new PermissionHandler.
func NewPermissionHandler(
	createUC RequestCreator,
	getUC RequestProvider,
	listUC RequestLister,
	approveUC RequestApprover,
	rejectUC RequestRejecter,
	bulkRejectUC BulkRejecter,
	countPendingUC PendingCounter,
) *PermissionHandler {
	return &PermissionHandler{
		createUC:       createUC,
		getUC:          getUC,
		listUC:         listUC,
		approveUC:      approveUC,
		rejectUC:       rejectUC,
		bulkRejectUC:   bulkRejectUC,
		countPendingUC: countPendingUC,
	}
}

// RegisterRoutes registers permission request routes with the router.
func (h *PermissionHandler) RegisterRoutes(r *httpserver.Router) {
	tenant := r.Tenant()
	tenant.POST("/permission-requests", h.Create)
	tenant.GET("/permission-requests", h.List)
	tenant.GET("/permission-requests/pending/count", h.CountPending)
	tenant.GET("/permission-requests/:request_id", h.Get)
	tenant.POST("/permission-requests/:request_id/approve", h.Approve, middleware.RequireTenantReviewer())
	tenant.POST("/permission-requests/:request_id/reject", h.Reject, middleware.RequireTenantReviewer())

	// Cross-tenant batch rejection stays admin-only.
	r.Admin().POST("/permission-requests/bulk-reject", h.BulkReject)
}

// Create handles POST /api/v1/tenants/:tenant_id/permission-requests.
func (h *PermissionHandler) Create(c echo.Context) error {
	var req CreatePermissionRequest
	if err := c.Bind(&req); err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid request body",
		)
	}

	result, err := h.createUC.Execute(c.Request().Context(), apppermission.CreateRequestCommand{
		TenantID:      middleware.GetTenantID(c),
		RequesterID:   middleware.GetUserID(c),
		Permission:    req.Permission,
		Justification: req.Justification,
	})
	if err != nil {
		switch {
		case isValidationError(err):
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusBadRequest,
				"VALIDATION_ERROR",
				err.Error(),
			)
		case errors.Is(err, apppermission.ErrNotTenantMember):
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusForbidden,
				"NOT_TENANT_MEMBER",
				"Requester is not a member of the tenant",
			)
		default:
			return httpserver.RespondError(c, err)
		}
	}

	return httpserver.RespondCreated(c, ToPermissionRequestDTO(result.Value))
}

// Get handles GET /api/v1/tenants/:tenant_id/permission-requests/:request_id.
func (h *PermissionHandler) Get(c echo.Context) error {
	requestID, err := uuid.ParseUUID(c.Param("request_id"))
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST_ID",
			"Invalid request ID format",
		)
	}

	result, err := h.getUC.Execute(c.Request().Context(), apppermission.GetRequestQuery{
		RequestID: requestID,
	})
	if err != nil {
		if errors.Is(err, apppermission.ErrRequestNotFound) {
			return httpserver.RespondErrorWithCode(
				c,
				http.StatusNotFound,
				"REQUEST_NOT_FOUND",
				"Permission request not found",
			)
		}
		return httpserver.RespondError(c, err)
	}

	// Requests from other tenants are not visible through this route.
	if result.Value.TenantID() != middleware.GetTenantID(c) {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusNotFound,
			"REQUEST_NOT_FOUND",
			"Permission request not found",
		)
	}

	return httpserver.RespondOK(c, ToPermissionRequestDTO(result.Value))
}

// List handles GET /api/v1/tenants/:tenant_id/permission-requests.
// Accepts optional status, offset and limit query parameters.
func (h *PermissionHandler) List(c echo.Context) error {
	offset, limit := parsePagination(c)

	result, err := h.listUC.Execute(c.Request().Context(), apppermission.ListRequestsQuery{
		TenantID: middleware.GetTenantID(c),
		Status:   permission.Status(c.QueryParam("status")),
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

	return httpserver.RespondOK(c, PageDTO[PermissionRequestDTO]{
		Items:  ToPermissionRequestDTOs(result.Requests),
		Total:  result.Total,
		Offset: result.Offset,
		Limit:  result.Limit,
	})
}

// CountPending handles GET /api/v1/tenants/:tenant_id/permission-requests/pending/count.
func (h *PermissionHandler) CountPending(c echo.Context) error {
	result, err := h.countPendingUC.Execute(c.Request().Context(), apppermission.CountPendingQuery{
		TenantID: middleware.GetTenantID(c),
	})
	if err != nil {
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondOK(c, PendingCountResponse{Count: result.Count})
}

// Approve handles POST /api/v1/tenants/:tenant_id/permission-requests/:request_id/approve.
func (h *PermissionHandler) Approve(c echo.Context) error {
	requestID, err := uuid.ParseUUID(c.Param("request_id"))
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST_ID",
			"Invalid request ID format",
		)
	}

	var req ReviewPermissionRequest
	if err := c.Bind(&req); err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid request body",
		)
	}

	result, err := h.approveUC.Execute(c.Request().Context(), apppermission.ApproveRequestCommand{
		RequestID:  requestID,
		ReviewerID: middleware.GetUserID(c),
		Note:       req.Note,
	})
	if err != nil {
		return respondReviewError(c, err)
	}

	return httpserver.RespondOK(c, ToPermissionRequestDTO(result.Value))
}

// Reject handles POST /api/v1/tenants/:tenant_id/permission-requests/:request_id/reject.
func (h *PermissionHandler) Reject(c echo.Context) error {
	requestID, err := uuid.ParseUUID(c.Param("request_id"))
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST_ID",
			"Invalid request ID format",
		)
	}

	var req ReviewPermissionRequest
	if err := c.Bind(&req); err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid request body",
		)
	}

	result, err := h.rejectUC.Execute(c.Request().Context(), apppermission.RejectRequestCommand{
		RequestID:  requestID,
		ReviewerID: middleware.GetUserID(c),
		Note:       req.Note,
	})
	if err != nil {
		return respondReviewError(c, err)
	}

	return httpserver.RespondOK(c, ToPermissionRequestDTO(result.Value))
}

// BulkReject handles POST /api/v1/admin/permission-requests/bulk-reject.
// Pending requests from any tenant may appear in one batch.
func (h *PermissionHandler) BulkReject(c echo.Context) error {
	var req BulkRejectRequest
	if err := c.Bind(&req); err != nil {
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid request body",
		)
	}

	result, err := h.bulkRejectUC.Execute(c.Request().Context(), apppermission.BulkRejectRequestsCommand{
		RequestIDs: req.RequestIDs,
		ReviewerID: middleware.GetUserID(c),
		Note:       req.Note,
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

	return httpserver.RespondOK(c, BulkRejectResponse{RejectedCount: result.RejectedCount})
}

// respondReviewError maps approve/reject use case errors to HTTP responses.
func respondReviewError(c echo.Context, err error) error {
	switch {
	case isValidationError(err):
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusBadRequest,
			"VALIDATION_ERROR",
			err.Error(),
		)
	case errors.Is(err, apppermission.ErrRequestNotFound):
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusNotFound,
			"REQUEST_NOT_FOUND",
			"Permission request not found",
		)
	case errors.Is(err, apppermission.ErrReviewNotAllowed):
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusForbidden,
			"REVIEW_NOT_ALLOWED",
			"User is not allowed to review requests in this tenant",
		)
	case errors.Is(err, apppermission.ErrNotTenantMember):
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusForbidden,
			"NOT_TENANT_MEMBER",
			"Reviewer is not a member of the tenant",
		)
	case errors.Is(err, apppermission.ErrAlreadyReviewed):
		return httpserver.RespondErrorWithCode(
			c,
			http.StatusConflict,
			"ALREADY_REVIEWED",
			"Request has already been reviewed",
		)
	default:
		return httpserver.RespondError(c, err)
	}
}
