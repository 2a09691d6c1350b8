package permission

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
)

// RejectRequestUseCase handles rejecting a pending request.
type RejectRequestUseCase struct {
	requestRepo Repository
	memberRepo  MemberRepository
}

// NewRejectRequestUseCase creates a new RejectRequestUseCase.
func NewRejectRequestUseCase(requestRepo Repository, memberRepo MemberRepository) *RejectRequestUseCase {
	return &RejectRequestUseCase{
		requestRepo: requestRepo,
		memberRepo:  memberRepo,
	}
}

// Execute rejects the request under the same authorization rules as
// approval.
func (uc *RejectRequestUseCase) Execute(ctx context.Context, cmd RejectRequestCommand) (Result, error) {
	if err := uc.validate(cmd); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	req, err := uc.requestRepo.FindByID(ctx, cmd.RequestID)
	if err != nil {
		return Result{}, ErrRequestNotFound
	}

	if authErr := authorizeReviewer(ctx, uc.memberRepo, req.TenantID(), cmd.ReviewerID); authErr != nil {
		return Result{}, authErr
	}

	if rejectErr := req.Reject(cmd.ReviewerID, cmd.Note); rejectErr != nil {
		if errors.Is(rejectErr, errs.ErrInvalidState) {
			return Result{}, ErrAlreadyReviewed
		}
		return Result{}, fmt.Errorf("failed to reject request: %w", rejectErr)
	}

	if saveErr := uc.requestRepo.Save(ctx, req); saveErr != nil {
		return Result{}, fmt.Errorf("failed to save request: %w", saveErr)
	}

	return Result{
		Result: appcore.Result[*permission.Request]{
			Value: req,
		},
	}, nil
}

func (uc *RejectRequestUseCase) validate(cmd RejectRequestCommand) error {
	if err := appcore.ValidateUUID("requestID", cmd.RequestID); err != nil {
		return err
	}
	return appcore.ValidateUUID("reviewerID", cmd.ReviewerID)
}
