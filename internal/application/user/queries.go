package user

import "github.com/gatehouse-io/gatehouse/internal/domain/uuid"

// Query is the base interface for user queries.
type Query interface {
	QueryName() string
}

// GetUserQuery fetches a user by internal ID.
type GetUserQuery struct {
	UserID uuid.UUID
}

func (q GetUserQuery) QueryName() string { return "GetUser" }

// GetUserByUsernameQuery fetches a user by username.
type GetUserByUsernameQuery struct {
	Username string
}

func (q GetUserByUsernameQuery) QueryName() string { return "GetUserByUsername" }

// ListUsersQuery lists users with pagination.
type ListUsersQuery struct {
	Offset int
	Limit  int
}

func (q ListUsersQuery) QueryName() string { return "ListUsers" }

// CheckEmailExistsQuery checks whether an email address is taken.
// ExcludeUserID, when set, removes that user's own record from a
// positive match so the same check serves profile updates.
type CheckEmailExistsQuery struct {
	Email         string
	ExcludeUserID uuid.UUID
}

func (q CheckEmailExistsQuery) QueryName() string { return "CheckEmailExists" }
