package permission

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
)

// CreateRequestUseCase handles opening a permission request.
type CreateRequestUseCase struct {
	requestRepo CommandRepository
	memberRepo  MemberRepository
}

// NewCreateRequestUseCase creates a new CreateRequestUseCase.
func NewCreateRequestUseCase(requestRepo CommandRepository, memberRepo MemberRepository) *CreateRequestUseCase {
	return &CreateRequestUseCase{
		requestRepo: requestRepo,
		memberRepo:  memberRepo,
	}
}

// Execute creates a pending request. The requester must be a member of
// the tenant.
func (uc *CreateRequestUseCase) Execute(ctx context.Context, cmd CreateRequestCommand) (Result, error) {
	if err := uc.validate(cmd); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := uc.memberRepo.FindMember(ctx, cmd.TenantID, cmd.RequesterID); err != nil {
		return Result{}, ErrNotTenantMember
	}

	req, err := permission.NewRequest(cmd.TenantID, cmd.RequesterID, cmd.Permission, cmd.Justification)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
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

func (uc *CreateRequestUseCase) validate(cmd CreateRequestCommand) error {
	if err := appcore.ValidateUUID("tenantID", cmd.TenantID); err != nil {
		return err
	}
	if err := appcore.ValidateUUID("requesterID", cmd.RequesterID); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("permission", cmd.Permission); err != nil {
		return err
	}
	return appcore.ValidateMaxLength("justification", cmd.Justification, permission.MaxJustificationLength)
}
