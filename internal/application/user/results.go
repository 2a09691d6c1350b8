package user

import (
	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/user"
)

// Result is the outcome of a single-user operation.
type Result struct {
	appcore.Result[*user.User]
}

// UsersListResult is the outcome of a list operation.
type UsersListResult struct {
	Users      []*user.User
	TotalCount int
	Offset     int
	Limit      int
}

// EmailExistsResult is the outcome of an email existence check.
type EmailExistsResult struct {
	Exists bool
}
