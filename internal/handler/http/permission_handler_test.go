package httphandler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	apppermission "github.com/gatehouse-io/gatehouse/internal/application/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
	httphandler "github.com/gatehouse-io/gatehouse/internal/handler/http"
	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

type stubCreateRequestUC struct {
	result apppermission.Result
	err    error
	cmd    apppermission.CreateRequestCommand
}

func (s *stubCreateRequestUC) Execute(_ context.Context, cmd apppermission.CreateRequestCommand) (apppermission.Result, error) {
	s.cmd = cmd
	return s.result, s.err
}

type stubGetRequestUC struct {
	result apppermission.Result
	err    error
}

func (s *stubGetRequestUC) Execute(_ context.Context, _ apppermission.GetRequestQuery) (apppermission.Result, error) {
	return s.result, s.err
}

type stubListRequestsUC struct {
	result apppermission.ListResult
	err    error
	query  apppermission.ListRequestsQuery
}

func (s *stubListRequestsUC) Execute(_ context.Context, query apppermission.ListRequestsQuery) (apppermission.ListResult, error) {
	s.query = query
	return s.result, s.err
}

type stubApproveUC struct {
	result apppermission.Result
	err    error
	cmd    apppermission.ApproveRequestCommand
}

func (s *stubApproveUC) Execute(_ context.Context, cmd apppermission.ApproveRequestCommand) (apppermission.Result, error) {
	s.cmd = cmd
	return s.result, s.err
}

type stubRejectUC struct {
	result apppermission.Result
	err    error
}

func (s *stubRejectUC) Execute(_ context.Context, _ apppermission.RejectRequestCommand) (apppermission.Result, error) {
	return s.result, s.err
}

type stubBulkRejectUC struct {
	result apppermission.BulkRejectResult
	err    error
	cmd    apppermission.BulkRejectRequestsCommand
}

func (s *stubBulkRejectUC) Execute(_ context.Context, cmd apppermission.BulkRejectRequestsCommand) (apppermission.BulkRejectResult, error) {
	s.cmd = cmd
	return s.result, s.err
}

type stubCountPendingUC struct {
	result apppermission.CountResult
	err    error
}

func (s *stubCountPendingUC) Execute(_ context.Context, _ apppermission.CountPendingQuery) (apppermission.CountResult, error) {
	return s.result, s.err
}

type permissionHandlerStubs struct {
	create       *stubCreateRequestUC
	get          *stubGetRequestUC
	list         *stubListRequestsUC
	approve      *stubApproveUC
	reject       *stubRejectUC
	bulkReject   *stubBulkRejectUC
	countPending *stubCountPendingUC
}

func newPermissionHandler() (*httphandler.PermissionHandler, *permissionHandlerStubs) {
	stubs := &permissionHandlerStubs{
		create:       &stubCreateRequestUC{},
		get:          &stubGetRequestUC{},
		list:         &stubListRequestsUC{},
		approve:      &stubApproveUC{},
		reject:       &stubRejectUC{},
		bulkReject:   &stubBulkRejectUC{},
		countPending: &stubCountPendingUC{},
	}
	h := httphandler.NewPermissionHandler(
		stubs.create,
		stubs.get,
		stubs.list,
		stubs.approve,
		stubs.reject,
		stubs.bulkReject,
		stubs.countPending,
	)
	return h, stubs
}

func newPendingRequest(tenantID, requesterID uuid.UUID) *permission.Request {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return permission.Reconstruct(
		uuid.NewUUID(), tenantID, requesterID,
		"report.export", "quarterly report",
		permission.StatusPending,
		uuid.UUID(""), "",
		created, time.Time{},
	)
}

func requestResult(r *permission.Request) apppermission.Result {
	return apppermission.Result{Result: appcore.Result[*permission.Request]{Value: r}}
}

func TestPermissionHandler_Create(t *testing.T) {
	tenantID := uuid.NewUUID()
	requesterID := uuid.NewUUID()

	h, stubs := newPermissionHandler()
	stubs.create.result = requestResult(newPendingRequest(tenantID, requesterID))

	c, rec := newJSONContext(http.MethodPost, "/permission-requests",
		`{"permission":"report.export","justification":"quarterly report"}`)
	c.Set(string(middleware.ContextKeyTenantID), tenantID)
	c.Set(string(middleware.ContextKeyUserID), requesterID)

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, tenantID, stubs.create.cmd.TenantID)
	assert.Equal(t, requesterID, stubs.create.cmd.RequesterID)
	assert.Equal(t, "report.export", stubs.create.cmd.Permission)
	assert.Contains(t, rec.Body.String(), "pending")
}

func TestPermissionHandler_Get(t *testing.T) {
	t.Run("same tenant", func(t *testing.T) {
		tenantID := uuid.NewUUID()
		req := newPendingRequest(tenantID, uuid.NewUUID())

		h, stubs := newPermissionHandler()
		stubs.get.result = requestResult(req)

		c, rec := newJSONContext(http.MethodGet, "/permission-requests/"+req.ID().String(), "")
		c.SetParamNames("request_id")
		c.SetParamValues(req.ID().String())
		c.Set(string(middleware.ContextKeyTenantID), tenantID)

		require.NoError(t, h.Get(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "report.export")
	})

	t.Run("other tenant request is hidden", func(t *testing.T) {
		req := newPendingRequest(uuid.NewUUID(), uuid.NewUUID())

		h, stubs := newPermissionHandler()
		stubs.get.result = requestResult(req)

		c, rec := newJSONContext(http.MethodGet, "/permission-requests/"+req.ID().String(), "")
		c.SetParamNames("request_id")
		c.SetParamValues(req.ID().String())
		c.Set(string(middleware.ContextKeyTenantID), uuid.NewUUID())

		require.NoError(t, h.Get(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		h, stubs := newPermissionHandler()
		stubs.get.err = apppermission.ErrRequestNotFound

		requestID := uuid.NewUUID()
		c, rec := newJSONContext(http.MethodGet, "/permission-requests/"+requestID.String(), "")
		c.SetParamNames("request_id")
		c.SetParamValues(requestID.String())

		require.NoError(t, h.Get(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPermissionHandler_List(t *testing.T) {
	tenantID := uuid.NewUUID()

	h, stubs := newPermissionHandler()
	stubs.list.result = apppermission.ListResult{
		Requests: []*permission.Request{newPendingRequest(tenantID, uuid.NewUUID())},
		Total:    7,
		Offset:   0,
		Limit:    20,
	}

	c, rec := newJSONContext(http.MethodGet, "/permission-requests?status=pending&limit=20", "")
	c.Set(string(middleware.ContextKeyTenantID), tenantID)

	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tenantID, stubs.list.query.TenantID)
	assert.Equal(t, permission.StatusPending, stubs.list.query.Status)
	assert.Contains(t, rec.Body.String(), `"total":7`)
}

func TestPermissionHandler_CountPending(t *testing.T) {
	h, stubs := newPermissionHandler()
	stubs.countPending.result = apppermission.CountResult{Count: 3}

	c, rec := newJSONContext(http.MethodGet, "/permission-requests/pending/count", "")
	c.Set(string(middleware.ContextKeyTenantID), uuid.NewUUID())

	require.NoError(t, h.CountPending(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":3`)
}

func TestPermissionHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tenantID := uuid.NewUUID()
		reviewerID := uuid.NewUUID()
		req := newPendingRequest(tenantID, uuid.NewUUID())
		require.NoError(t, req.Approve(reviewerID, "looks fine"))

		h, stubs := newPermissionHandler()
		stubs.approve.result = requestResult(req)

		c, rec := newJSONContext(http.MethodPost,
			"/permission-requests/"+req.ID().String()+"/approve", `{"note":"looks fine"}`)
		c.SetParamNames("request_id")
		c.SetParamValues(req.ID().String())
		c.Set(string(middleware.ContextKeyUserID), reviewerID)

		require.NoError(t, h.Approve(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, reviewerID, stubs.approve.cmd.ReviewerID)
		assert.Equal(t, "looks fine", stubs.approve.cmd.Note)
		assert.Contains(t, rec.Body.String(), "approved")
	})

	t.Run("already reviewed", func(t *testing.T) {
		h, stubs := newPermissionHandler()
		stubs.approve.err = apppermission.ErrAlreadyReviewed

		requestID := uuid.NewUUID()
		c, rec := newJSONContext(http.MethodPost,
			"/permission-requests/"+requestID.String()+"/approve", `{}`)
		c.SetParamNames("request_id")
		c.SetParamValues(requestID.String())

		require.NoError(t, h.Approve(c))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "ALREADY_REVIEWED")
	})
}

func TestPermissionHandler_Reject(t *testing.T) {
	t.Run("member may not review", func(t *testing.T) {
		h, stubs := newPermissionHandler()
		stubs.reject.err = apppermission.ErrReviewNotAllowed

		requestID := uuid.NewUUID()
		c, rec := newJSONContext(http.MethodPost,
			"/permission-requests/"+requestID.String()+"/reject", `{"note":"no"}`)
		c.SetParamNames("request_id")
		c.SetParamValues(requestID.String())

		require.NoError(t, h.Reject(c))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "REVIEW_NOT_ALLOWED")
	})

	t.Run("not found", func(t *testing.T) {
		h, stubs := newPermissionHandler()
		stubs.reject.err = apppermission.ErrRequestNotFound

		requestID := uuid.NewUUID()
		c, rec := newJSONContext(http.MethodPost,
			"/permission-requests/"+requestID.String()+"/reject", `{}`)
		c.SetParamNames("request_id")
		c.SetParamValues(requestID.String())

		require.NoError(t, h.Reject(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPermissionHandler_BulkReject(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		reviewerID := uuid.NewUUID()
		firstID := uuid.NewUUID()
		secondID := uuid.NewUUID()

		h, stubs := newPermissionHandler()
		stubs.bulkReject.result = apppermission.BulkRejectResult{RejectedCount: 2}

		c, rec := newJSONContext(http.MethodPost, "/admin/permission-requests/bulk-reject",
			`{"request_ids":["`+firstID.String()+`","`+secondID.String()+`"],"note":"policy change"}`)
		c.Set(string(middleware.ContextKeyUserID), reviewerID)

		require.NoError(t, h.BulkReject(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, reviewerID, stubs.bulkReject.cmd.ReviewerID)
		assert.Len(t, stubs.bulkReject.cmd.RequestIDs, 2)
		assert.Contains(t, rec.Body.String(), `"rejected_count":2`)
	})

	t.Run("validation error", func(t *testing.T) {
		h, stubs := newPermissionHandler()
		stubs.bulkReject.err = validationFailure("reviewer_id", "must be a valid UUID")

		c, rec := newJSONContext(http.MethodPost, "/admin/permission-requests/bulk-reject",
			`{"request_ids":[]}`)

		require.NoError(t, h.BulkReject(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	})
}
