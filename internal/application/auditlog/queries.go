package auditlog

import (
	"time"

	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// Filter narrows entry listings. Zero values mean "no constraint".
type Filter struct {
	Action string
	From   time.Time
	To     time.Time
}

// ListEntriesQuery pages through a tenant's audit trail, newest first.
type ListEntriesQuery struct {
	TenantID uuid.UUID
	Filter   Filter
	Offset   int
	Limit    int
}

// QueryName returns the query name.
func (q ListEntriesQuery) QueryName() string { return "ListAuditEntries" }

// CountEntriesQuery counts a tenant's entries under the same filter.
type CountEntriesQuery struct {
	TenantID uuid.UUID
	Filter   Filter
}

// QueryName returns the query name.
func (q CountEntriesQuery) QueryName() string { return "CountAuditEntries" }
