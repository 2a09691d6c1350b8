package user

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/user"
)

// PromoteToAdminUseCase handles granting system administrator rights.
type PromoteToAdminUseCase struct {
	userRepo Repository
}

// NewPromoteToAdminUseCase creates a new PromoteToAdminUseCase.
func NewPromoteToAdminUseCase(userRepo Repository) *PromoteToAdminUseCase {
	return &PromoteToAdminUseCase{userRepo: userRepo}
}

// Execute promotes the target user. Only system administrators may
// promote.
func (uc *PromoteToAdminUseCase) Execute(
	ctx context.Context,
	cmd PromoteToAdminCommand,
) (Result, error) {
	if err := uc.validate(cmd); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	promoter, err := uc.userRepo.FindByID(ctx, cmd.PromotedBy)
	if err != nil {
		return Result{}, ErrUserNotFound
	}
	if !promoter.IsSystemAdmin() {
		return Result{}, ErrNotSystemAdmin
	}

	usr, err := uc.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return Result{}, ErrUserNotFound
	}

	usr.SetAdmin(true)

	if saveErr := uc.userRepo.Save(ctx, usr); saveErr != nil {
		return Result{}, fmt.Errorf("failed to save user: %w", saveErr)
	}

	return Result{
		Result: appcore.Result[*user.User]{
			Value: usr,
		},
	}, nil
}

func (uc *PromoteToAdminUseCase) validate(cmd PromoteToAdminCommand) error {
	if err := appcore.ValidateUUID("userID", cmd.UserID); err != nil {
		return err
	}
	return appcore.ValidateUUID("promotedBy", cmd.PromotedBy)
}
