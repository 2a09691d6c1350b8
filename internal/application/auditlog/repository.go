package auditlog

import (
	"context"
	"time"

	"github.com/gatehouse-io/gatehouse/internal/domain/auditlog"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// CommandRepository is the state-changing side of audit storage.
// Declared on the consumer side.
type CommandRepository interface {
	// Save appends an entry.
	Save(ctx context.Context, entry *auditlog.Entry) error

	// DeleteByIDs removes every entry in ids in one batched call and
	// returns how many existed.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	// DeleteOlderThan removes up to limit entries created before the
	// cutoff and returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

// QueryRepository is the read-only side of audit storage.
// Declared on the consumer side.
type QueryRepository interface {
	// FindByTenant lists a tenant's entries matching the filter,
	// newest first.
	FindByTenant(
		ctx context.Context,
		tenantID uuid.UUID,
		filter Filter,
		offset, limit int,
	) ([]*auditlog.Entry, error)

	// CountByTenant counts a tenant's entries matching the filter.
	CountByTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) (int, error)
}

// Repository joins both sides for use cases that need them.
type Repository interface {
	CommandRepository
	QueryRepository
}
