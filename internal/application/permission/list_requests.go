package permission

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
)

// Pagination bounds for request listings.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListRequestsUseCase lists a tenant's requests with optional status
// filtering.
type ListRequestsUseCase struct {
	requestRepo QueryRepository
}

// NewListRequestsUseCase creates a new ListRequestsUseCase.
func NewListRequestsUseCase(requestRepo QueryRepository) *ListRequestsUseCase {
	return &ListRequestsUseCase{requestRepo: requestRepo}
}

// Execute returns a page of requests plus the total match count.
func (uc *ListRequestsUseCase) Execute(ctx context.Context, query ListRequestsQuery) (ListResult, error) {
	if err := uc.validate(query); err != nil {
		return ListResult{}, fmt.Errorf("validation failed: %w", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	requests, err := uc.requestRepo.FindByTenant(ctx, query.TenantID, query.Status, offset, limit)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to list requests: %w", err)
	}

	total, err := uc.requestRepo.CountByTenant(ctx, query.TenantID, query.Status)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to count requests: %w", err)
	}

	return ListResult{
		Requests: requests,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	}, nil
}

func (uc *ListRequestsUseCase) validate(query ListRequestsQuery) error {
	if err := appcore.ValidateUUID("tenantID", query.TenantID); err != nil {
		return err
	}
	if query.Status != "" && !permission.ValidStatus(query.Status) {
		return appcore.NewValidationError("status", "unknown status")
	}
	return nil
}
