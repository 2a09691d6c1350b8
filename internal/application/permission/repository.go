package permission

import (
	"context"

	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/tenant"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// CommandRepository is the state-changing side of request storage.
// Declared on the consumer side.
type CommandRepository interface {
	// Save stores a request, new or reviewed.
	Save(ctx context.Context, req *permission.Request) error

	// UpdateStatusByIDs moves every pending request in ids to the given
	// status in one batched call and returns how many matched.
	UpdateStatusByIDs(
		ctx context.Context,
		ids []uuid.UUID,
		status permission.Status,
		reviewerID uuid.UUID,
		note string,
	) (int64, error)
}

// QueryRepository is the read-only side of request storage.
// Declared on the consumer side.
type QueryRepository interface {
	// FindByID finds a request by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*permission.Request, error)

	// FindByTenant lists a tenant's requests, optionally filtered by
	// status (empty status means all), newest first.
	FindByTenant(
		ctx context.Context,
		tenantID uuid.UUID,
		status permission.Status,
		offset, limit int,
	) ([]*permission.Request, error)

	// CountByTenant counts a tenant's requests with the same filter.
	CountByTenant(ctx context.Context, tenantID uuid.UUID, status permission.Status) (int, error)
}

// Repository joins both sides for use cases that need them.
type Repository interface {
	CommandRepository
	QueryRepository
}

// MemberRepository resolves tenant memberships for review
// authorization. Declared on the consumer side.
type MemberRepository interface {
	// FindMember returns the membership of a user in a tenant.
	FindMember(ctx context.Context, tenantID, userID uuid.UUID) (*tenant.Member, error)
}
