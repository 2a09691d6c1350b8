package user

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/user"
)

// RegisterUserUseCase handles registration of a new local user.
type RegisterUserUseCase struct {
	userRepo Repository
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase.
func NewRegisterUserUseCase(userRepo Repository) *RegisterUserUseCase {
	return &RegisterUserUseCase{userRepo: userRepo}
}

// Execute registers the user after checking username and email
// uniqueness.
func (uc *RegisterUserUseCase) Execute(
	ctx context.Context,
	cmd RegisterUserCommand,
) (Result, error) {
	if err := uc.validate(cmd); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := uc.userRepo.FindByUsername(ctx, cmd.Username)
	if err == nil && existing != nil {
		return Result{}, ErrUsernameAlreadyExists
	}

	existingByEmail, err := uc.userRepo.FindByEmail(ctx, cmd.Email)
	if err == nil && existingByEmail != nil {
		return Result{}, ErrEmailAlreadyExists
	}

	usr, err := user.NewUser(
		cmd.ExternalID,
		cmd.Username,
		cmd.Email,
		cmd.DisplayName,
	)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create user: %w", err)
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

func (uc *RegisterUserUseCase) validate(cmd RegisterUserCommand) error {
	if err := appcore.ValidateRequired("externalID", cmd.ExternalID); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("username", cmd.Username); err != nil {
		return err
	}
	if err := appcore.ValidateEmail("email", cmd.Email); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("displayName", cmd.DisplayName); err != nil {
		return err
	}
	return nil
}
