package auditlog

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
)

// CountEntriesUseCase counts a tenant's entries under a filter.
type CountEntriesUseCase struct {
	logRepo QueryRepository
}

// NewCountEntriesUseCase creates a new CountEntriesUseCase.
func NewCountEntriesUseCase(logRepo QueryRepository) *CountEntriesUseCase {
	return &CountEntriesUseCase{logRepo: logRepo}
}

// Execute returns the matching entry count.
func (uc *CountEntriesUseCase) Execute(ctx context.Context, query CountEntriesQuery) (CountResult, error) {
	if err := appcore.ValidateUUID("tenantID", query.TenantID); err != nil {
		return CountResult{}, fmt.Errorf("validation failed: %w", err)
	}

	count, err := uc.logRepo.CountByTenant(ctx, query.TenantID, query.Filter)
	if err != nil {
		return CountResult{}, fmt.Errorf("failed to count entries: %w", err)
	}

	return CountResult{Count: count}, nil
}
