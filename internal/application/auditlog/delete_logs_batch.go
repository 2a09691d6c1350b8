package auditlog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// DeleteLogsBatchUseCase removes a set of audit entries in one batched
// storage call.
type DeleteLogsBatchUseCase struct {
	logRepo CommandRepository
	logger  *slog.Logger
}

// NewDeleteLogsBatchUseCase creates a new DeleteLogsBatchUseCase.
func NewDeleteLogsBatchUseCase(logRepo CommandRepository, logger *slog.Logger) *DeleteLogsBatchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteLogsBatchUseCase{
		logRepo: logRepo,
		logger:  logger,
	}
}

// Execute materializes the unique ID set once, issues a single batched
// delete and returns the number of unique IDs submitted. An empty set
// returns 0 without touching storage.
func (uc *DeleteLogsBatchUseCase) Execute(
	ctx context.Context,
	cmd DeleteLogsBatchCommand,
) (DeleteBatchResult, error) {
	if err := uc.validate(cmd); err != nil {
		return DeleteBatchResult{}, fmt.Errorf("validation failed: %w", err)
	}

	ids := dedupeIDs(cmd.EntryIDs)
	if len(ids) == 0 {
		return DeleteBatchResult{DeletedCount: 0}, nil
	}

	deleted, err := uc.logRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return DeleteBatchResult{}, fmt.Errorf("failed to delete entries: %w", err)
	}

	if deleted != int64(len(ids)) {
		uc.logger.WarnContext(ctx, "batch delete skipped missing entries",
			slog.Int("submitted", len(ids)),
			slog.Int64("deleted", deleted),
		)
	}

	return DeleteBatchResult{DeletedCount: len(ids)}, nil
}

func (uc *DeleteLogsBatchUseCase) validate(cmd DeleteLogsBatchCommand) error {
	for _, id := range cmd.EntryIDs {
		if err := appcore.ValidateUUID("entryIDs", id); err != nil {
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
