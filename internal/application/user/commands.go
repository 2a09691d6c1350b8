package user

import "github.com/gatehouse-io/gatehouse/internal/domain/uuid"

// Command is the base interface for user commands.
type Command interface {
	CommandName() string
}

// RegisterUserCommand registers a local user for an identity-provider
// subject.
type RegisterUserCommand struct {
	ExternalID  string
	Username    string
	Email       string
	DisplayName string
}

func (c RegisterUserCommand) CommandName() string { return "RegisterUser" }

// UpdateProfileCommand updates a user's profile. Nil fields are left
// unchanged.
type UpdateProfileCommand struct {
	UserID      uuid.UUID
	DisplayName *string
	Email       *string
}

func (c UpdateProfileCommand) CommandName() string { return "UpdateProfile" }

// PromoteToAdminCommand grants system administrator rights.
type PromoteToAdminCommand struct {
	UserID     uuid.UUID
	PromotedBy uuid.UUID // must be a system admin
}

func (c PromoteToAdminCommand) CommandName() string { return "PromoteToAdmin" }

// DeactivateUserCommand soft-deletes a user account.
type DeactivateUserCommand struct {
	UserID        uuid.UUID
	DeactivatedBy uuid.UUID // must be a system admin
}

func (c DeactivateUserCommand) CommandName() string { return "DeactivateUser" }
