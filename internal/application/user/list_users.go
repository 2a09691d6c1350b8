package user

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
)

// Pagination bounds for user listing.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListUsersUseCase handles listing users with pagination.
type ListUsersUseCase struct {
	userRepo QueryRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase.
func NewListUsersUseCase(userRepo QueryRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute lists users. A zero limit falls back to the default; limits
// above the maximum are clamped.
func (uc *ListUsersUseCase) Execute(
	ctx context.Context,
	query ListUsersQuery,
) (UsersListResult, error) {
	if err := uc.validate(query); err != nil {
		return UsersListResult{}, fmt.Errorf("validation failed: %w", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	users, err := uc.userRepo.List(ctx, query.Offset, limit)
	if err != nil {
		return UsersListResult{}, fmt.Errorf("failed to list users: %w", err)
	}

	total, err := uc.userRepo.Count(ctx)
	if err != nil {
		return UsersListResult{}, fmt.Errorf("failed to count users: %w", err)
	}

	return UsersListResult{
		Users:      users,
		TotalCount: total,
		Offset:     query.Offset,
		Limit:      limit,
	}, nil
}

func (uc *ListUsersUseCase) validate(query ListUsersQuery) error {
	if err := appcore.ValidateNonNegative("offset", query.Offset); err != nil {
		return err
	}
	return appcore.ValidateNonNegative("limit", query.Limit)
}
