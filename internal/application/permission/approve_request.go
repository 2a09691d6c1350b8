package permission

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
)

// ApproveRequestUseCase handles approving a pending request.
type ApproveRequestUseCase struct {
	requestRepo Repository
	memberRepo  MemberRepository
}

// NewApproveRequestUseCase creates a new ApproveRequestUseCase.
func NewApproveRequestUseCase(requestRepo Repository, memberRepo MemberRepository) *ApproveRequestUseCase {
	return &ApproveRequestUseCase{
		requestRepo: requestRepo,
		memberRepo:  memberRepo,
	}
}

// Execute approves the request. The reviewer must hold an owner or
// admin role in the request's tenant, and the request must still be
// pending.
func (uc *ApproveRequestUseCase) Execute(ctx context.Context, cmd ApproveRequestCommand) (Result, error) {
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

	if approveErr := req.Approve(cmd.ReviewerID, cmd.Note); approveErr != nil {
		if errors.Is(approveErr, errs.ErrInvalidState) {
			return Result{}, ErrAlreadyReviewed
		}
		return Result{}, fmt.Errorf("failed to approve request: %w", approveErr)
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

func (uc *ApproveRequestUseCase) validate(cmd ApproveRequestCommand) error {
	if err := appcore.ValidateUUID("requestID", cmd.RequestID); err != nil {
		return err
	}
	return appcore.ValidateUUID("reviewerID", cmd.ReviewerID)
}
