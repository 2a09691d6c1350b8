package user

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/user"
)

// UpdateProfileUseCase handles profile updates.
type UpdateProfileUseCase struct {
	userRepo Repository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase.
func NewUpdateProfileUseCase(userRepo Repository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo}
}

// Execute applies the profile changes. When the email changes, the new
// address must not belong to another user.
func (uc *UpdateProfileUseCase) Execute(
	ctx context.Context,
	cmd UpdateProfileCommand,
) (Result, error) {
	if err := uc.validate(cmd); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	usr, err := uc.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return Result{}, ErrUserNotFound
	}

	if cmd.Email != nil && *cmd.Email != usr.Email() {
		other, findErr := uc.userRepo.FindByEmail(ctx, *cmd.Email)
		if findErr == nil && other != nil && other.ID() != usr.ID() {
			return Result{}, ErrEmailAlreadyExists
		}
	}

	if updateErr := usr.UpdateProfile(cmd.DisplayName, cmd.Email); updateErr != nil {
		return Result{}, fmt.Errorf("failed to update profile: %w", updateErr)
	}

	if saveErr := uc.userRepo.Save(ctx, usr); saveErr != nil {
		return Result{}, fmt.Errorf("failed to save user: %w", saveErr)
	}

	return Result{
		Result: appcore.Result[*user.User]{
			Value: usr,
		},
	}, nil
}

func (uc *UpdateProfileUseCase) validate(cmd UpdateProfileCommand) error {
	if err := appcore.ValidateUUID("userID", cmd.UserID); err != nil {
		return err
	}
	if cmd.Email != nil {
		if err := appcore.ValidateEmail("email", *cmd.Email); err != nil {
			return err
		}
	}
	return nil
}
