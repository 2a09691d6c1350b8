package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
)

// CheckEmailExistsUseCase answers whether an email address is already
// taken. With ExcludeUserID set, the excluded user's own record does
// not count as a match, so profile updates can reuse the check.
type CheckEmailExistsUseCase struct {
	userRepo QueryRepository
}

// NewCheckEmailExistsUseCase creates a new CheckEmailExistsUseCase.
func NewCheckEmailExistsUseCase(userRepo QueryRepository) *CheckEmailExistsUseCase {
	return &CheckEmailExistsUseCase{userRepo: userRepo}
}

// Execute performs the existence check. The check is read-only and
// idempotent: the same query against unchanged state yields the same
// verdict.
func (uc *CheckEmailExistsUseCase) Execute(
	ctx context.Context,
	query CheckEmailExistsQuery,
) (EmailExistsResult, error) {
	if err := appcore.ValidateEmail("email", query.Email); err != nil {
		return EmailExistsResult{}, fmt.Errorf("validation failed: %w", err)
	}

	usr, err := uc.userRepo.FindByEmail(ctx, query.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return EmailExistsResult{Exists: false}, nil
		}
		return EmailExistsResult{}, fmt.Errorf("failed to look up email: %w", err)
	}
	if usr == nil {
		return EmailExistsResult{Exists: false}, nil
	}

	if !query.ExcludeUserID.IsZero() && usr.ID() == query.ExcludeUserID {
		return EmailExistsResult{Exists: false}, nil
	}

	return EmailExistsResult{Exists: true}, nil
}
