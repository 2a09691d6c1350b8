package user

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/user"
)

// GetUserByUsernameUseCase handles looking up a user by username.
type GetUserByUsernameUseCase struct {
	userRepo QueryRepository
}

// NewGetUserByUsernameUseCase creates a new GetUserByUsernameUseCase.
func NewGetUserByUsernameUseCase(userRepo QueryRepository) *GetUserByUsernameUseCase {
	return &GetUserByUsernameUseCase{userRepo: userRepo}
}

// Execute looks up the user.
func (uc *GetUserByUsernameUseCase) Execute(
	ctx context.Context,
	query GetUserByUsernameQuery,
) (Result, error) {
	if err := appcore.ValidateRequired("username", query.Username); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	usr, err := uc.userRepo.FindByUsername(ctx, query.Username)
	if err != nil {
		return Result{}, ErrUserNotFound
	}

	return Result{
		Result: appcore.Result[*user.User]{
			Value: usr,
		},
	}, nil
}
