package permission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// BulkRejectRequestsUseCase rejects a set of pending requests in one
// batched storage call.
type BulkRejectRequestsUseCase struct {
	requestRepo CommandRepository
	logger      *slog.Logger
}

// NewBulkRejectRequestsUseCase creates a new BulkRejectRequestsUseCase.
func NewBulkRejectRequestsUseCase(requestRepo CommandRepository, logger *slog.Logger) *BulkRejectRequestsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BulkRejectRequestsUseCase{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// Execute materializes the unique ID set once, issues a single batched
// update and returns the number of unique IDs submitted. An empty set
// returns 0 without touching storage. Already-reviewed requests in the
// set are skipped by the storage layer's pending-only filter; there is
// no per-item failure reporting.
func (uc *BulkRejectRequestsUseCase) Execute(
	ctx context.Context,
	cmd BulkRejectRequestsCommand,
) (BulkRejectResult, error) {
	if err := uc.validate(cmd); err != nil {
		return BulkRejectResult{}, fmt.Errorf("validation failed: %w", err)
	}

	ids := dedupeIDs(cmd.RequestIDs)
	if len(ids) == 0 {
		return BulkRejectResult{RejectedCount: 0}, nil
	}

	matched, err := uc.requestRepo.UpdateStatusByIDs(
		ctx,
		ids,
		permission.StatusRejected,
		cmd.ReviewerID,
		cmd.Note,
	)
	if err != nil {
		return BulkRejectResult{}, fmt.Errorf("failed to bulk reject requests: %w", err)
	}

	if matched != int64(len(ids)) {
		uc.logger.WarnContext(ctx, "bulk reject skipped non-pending requests",
			slog.Int("submitted", len(ids)),
			slog.Int64("matched", matched),
		)
	}

	return BulkRejectResult{RejectedCount: len(ids)}, nil
}

func (uc *BulkRejectRequestsUseCase) validate(cmd BulkRejectRequestsCommand) error {
	if err := appcore.ValidateUUID("reviewerID", cmd.ReviewerID); err != nil {
		return err
	}
	for _, id := range cmd.RequestIDs {
		if err := appcore.ValidateUUID("requestIDs", id); err != nil {
			return err
		}
	}
	return nil
}

// dedupeIDs removes duplicates while keeping first-seen order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
