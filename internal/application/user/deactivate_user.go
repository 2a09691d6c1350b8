package user

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/user"
)

// DeactivateUserUseCase handles soft-deleting a user account.
type DeactivateUserUseCase struct {
	userRepo Repository
}

// NewDeactivateUserUseCase creates a new DeactivateUserUseCase.
func NewDeactivateUserUseCase(userRepo Repository) *DeactivateUserUseCase {
	return &DeactivateUserUseCase{userRepo: userRepo}
}

// Execute deactivates the target user. Only system administrators may
// deactivate, and deactivating an already inactive account fails with
// ErrUserInactive.
func (uc *DeactivateUserUseCase) Execute(
	ctx context.Context,
	cmd DeactivateUserCommand,
) (Result, error) {
	if err := uc.validate(cmd); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	actor, err := uc.userRepo.FindByID(ctx, cmd.DeactivatedBy)
	if err != nil {
		return Result{}, ErrUserNotFound
	}
	if !actor.IsSystemAdmin() {
		return Result{}, ErrNotSystemAdmin
	}

	usr, err := uc.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return Result{}, ErrUserNotFound
	}
	if !usr.IsActive() {
		return Result{}, ErrUserInactive
	}

	usr.SetActive(false)

	if saveErr := uc.userRepo.Save(ctx, usr); saveErr != nil {
		return Result{}, fmt.Errorf("failed to save user: %w", saveErr)
	}

	return Result{
		Result: appcore.Result[*user.User]{
			Value: usr,
		},
	}, nil
}

func (uc *DeactivateUserUseCase) validate(cmd DeactivateUserCommand) error {
	if err := appcore.ValidateUUID("userID", cmd.UserID); err != nil {
		return err
	}
	return appcore.ValidateUUID("deactivatedBy", cmd.DeactivatedBy)
}
