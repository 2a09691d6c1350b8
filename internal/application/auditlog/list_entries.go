package auditlog

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
)

// Pagination bounds for entry listings.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// ListEntriesUseCase pages through a tenant's audit trail.
type ListEntriesUseCase struct {
	logRepo QueryRepository
}

// NewListEntriesUseCase creates a new ListEntriesUseCase.
func NewListEntriesUseCase(logRepo QueryRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{logRepo: logRepo}
}

// Execute returns a page of entries plus the total match count.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, query ListEntriesQuery) (ListResult, error) {
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

	entries, err := uc.logRepo.FindByTenant(ctx, query.TenantID, query.Filter, offset, limit)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to list entries: %w", err)
	}

	total, err := uc.logRepo.CountByTenant(ctx, query.TenantID, query.Filter)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to count entries: %w", err)
	}

	return ListResult{
		Entries: entries,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
	}, nil
}

func (uc *ListEntriesUseCase) validate(query ListEntriesQuery) error {
	if err := appcore.ValidateUUID("tenantID", query.TenantID); err != nil {
		return err
	}
	filter := query.Filter
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return appcore.NewValidationError("filter", "time range end precedes start")
	}
	return nil
}
