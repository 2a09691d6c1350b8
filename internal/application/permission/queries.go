package permission

import (
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// GetRequestQuery fetches a single request by ID.
type GetRequestQuery struct {
	RequestID uuid.UUID
}

// QueryName returns the query name.
func (q GetRequestQuery) QueryName() string { return "GetPermissionRequest" }

// ListRequestsQuery lists a tenant's requests with an optional status
// filter and pagination.
type ListRequestsQuery struct {
	TenantID uuid.UUID
	Status   permission.Status // empty means all statuses
	Offset   int
	Limit    int
}

// QueryName returns the query name.
func (q ListRequestsQuery) QueryName() string { return "ListPermissionRequests" }

// CountPendingQuery counts a tenant's pending requests.
type CountPendingQuery struct {
	TenantID uuid.UUID
}

// QueryName returns the query name.
func (q CountPendingQuery) QueryName() string { return "CountPendingPermissionRequests" }
