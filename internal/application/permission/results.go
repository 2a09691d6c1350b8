package permission

import (
	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
)

// Result wraps a single request outcome.
type Result struct {
	appcore.Result[*permission.Request]
}

// ListResult is a page of requests plus the total match count.
type ListResult struct {
	Requests []*permission.Request
	Total    int
	Offset   int
	Limit    int
}

// BulkRejectResult reports how many requests the batch rejected.
type BulkRejectResult struct {
	RejectedCount int
}

// CountResult carries a bare count.
type CountResult struct {
	Count int
}
