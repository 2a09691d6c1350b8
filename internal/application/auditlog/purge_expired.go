package auditlog

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
)

// DefaultPurgeBatchSize bounds a single purge pass.
const DefaultPurgeBatchSize = 1000

// PurgeExpiredUseCase removes entries older than a cutoff in bounded
// batches. The retention worker drives it on a ticker.
type PurgeExpiredUseCase struct {
	logRepo CommandRepository
}

// NewPurgeExpiredUseCase creates a new PurgeExpiredUseCase.
func NewPurgeExpiredUseCase(logRepo CommandRepository) *PurgeExpiredUseCase {
	return &PurgeExpiredUseCase{logRepo: logRepo}
}

// Execute removes at most BatchSize entries created before the cutoff
// and returns how many were removed. Callers loop until the count
// comes back zero.
func (uc *PurgeExpiredUseCase) Execute(ctx context.Context, cmd PurgeExpiredCommand) (PurgeResult, error) {
	if cmd.Cutoff.IsZero() {
		return PurgeResult{}, fmt.Errorf("validation failed: %w", appcore.NewValidationError("cutoff", "cutoff is required"))
	}

	batchSize := cmd.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultPurgeBatchSize
	}

	purged, err := uc.logRepo.DeleteOlderThan(ctx, cmd.Cutoff, batchSize)
	if err != nil {
		return PurgeResult{}, fmt.Errorf("failed to purge entries: %w", err)
	}

	return PurgeResult{PurgedCount: purged}, nil
}
