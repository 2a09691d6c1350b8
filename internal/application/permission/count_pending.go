package permission

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
)

// CountPendingUseCase counts a tenant's pending requests.
type CountPendingUseCase struct {
	requestRepo QueryRepository
}

// NewCountPendingUseCase creates a new CountPendingUseCase.
func NewCountPendingUseCase(requestRepo QueryRepository) *CountPendingUseCase {
	return &CountPendingUseCase{requestRepo: requestRepo}
}

// Execute returns the pending request count for the tenant.
func (uc *CountPendingUseCase) Execute(ctx context.Context, query CountPendingQuery) (CountResult, error) {
	if err := appcore.ValidateUUID("tenantID", query.TenantID); err != nil {
		return CountResult{}, fmt.Errorf("validation failed: %w", err)
	}

	count, err := uc.requestRepo.CountByTenant(ctx, query.TenantID, permission.StatusPending)
	if err != nil {
		return CountResult{}, fmt.Errorf("failed to count pending requests: %w", err)
	}

	return CountResult{Count: count}, nil
}
