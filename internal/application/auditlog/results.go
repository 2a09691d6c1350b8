package auditlog

import "github.com/gatehouse-io/gatehouse/internal/domain/auditlog"

// ListResult is a page of entries plus the total match count.
type ListResult struct {
	Entries []*auditlog.Entry
	Total   int
	Offset  int
	Limit   int
}

// DeleteBatchResult reports how many entries the batch removed.
type DeleteBatchResult struct {
	DeletedCount int
}

// PurgeResult reports how many expired entries a purge pass removed.
type PurgeResult struct {
	PurgedCount int64
}

// CountResult carries a bare count.
type CountResult struct {
	Count int
}
