package permission

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
)

// GetRequestUseCase fetches a single request by ID.
type GetRequestUseCase struct {
	requestRepo QueryRepository
}

// NewGetRequestUseCase creates a new GetRequestUseCase.
func NewGetRequestUseCase(requestRepo QueryRepository) *GetRequestUseCase {
	return &GetRequestUseCase{requestRepo: requestRepo}
}

// Execute returns the request or ErrRequestNotFound.
func (uc *GetRequestUseCase) Execute(ctx context.Context, query GetRequestQuery) (Result, error) {
	if err := appcore.ValidateUUID("requestID", query.RequestID); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	req, err := uc.requestRepo.FindByID(ctx, query.RequestID)
	if err != nil {
		return Result{}, ErrRequestNotFound
	}

	return Result{
		Result: appcore.Result[*permission.Request]{
			Value: req,
		},
	}, nil
}
