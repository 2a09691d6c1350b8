package user

import (
	"context"

	"github.com/gatehouse-io/gatehouse/internal/domain/user"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// CommandRepository defines state-changing user persistence.
// The interface is declared on the consumer side (application layer).
type CommandRepository interface {
	// Save saves a user (create or update).
	Save(ctx context.Context, u *user.User) error

	// Delete removes a user.
	Delete(ctx context.Context, id uuid.UUID) error
}

// QueryRepository defines read-only user persistence.
// The interface is declared on the consumer side (application layer).
type QueryRepository interface {
	// FindByID finds a user by internal ID.
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)

	// FindByExternalID finds a user by identity-provider subject.
	FindByExternalID(ctx context.Context, externalID string) (*user.User, error)

	// FindByEmail finds a user by email.
	FindByEmail(ctx context.Context, email string) (*user.User, error)

	// FindByUsername finds a user by username.
	FindByUsername(ctx context.Context, username string) (*user.User, error)

	// List returns users with pagination.
	List(ctx context.Context, offset, limit int) ([]*user.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)
}

// Repository combines command and query interfaces for use cases that
// need both.
type Repository interface {
	CommandRepository
	QueryRepository
}
