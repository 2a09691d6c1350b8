package auditlog

import (
	"context"
	"fmt"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	"github.com/gatehouse-io/gatehouse/internal/domain/auditlog"
)

// RecordEntryUseCase appends an entry to the audit trail.
type RecordEntryUseCase struct {
	logRepo CommandRepository
}

// NewRecordEntryUseCase creates a new RecordEntryUseCase.
func NewRecordEntryUseCase(logRepo CommandRepository) *RecordEntryUseCase {
	return &RecordEntryUseCase{logRepo: logRepo}
}

// Execute creates and stores the entry.
func (uc *RecordEntryUseCase) Execute(ctx context.Context, cmd RecordEntryCommand) (*auditlog.Entry, error) {
	if err := uc.validate(cmd); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	entry, err := auditlog.NewEntry(cmd.TenantID, cmd.ActorID, cmd.Action, cmd.TargetType, cmd.TargetID, cmd.Detail)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	if saveErr := uc.logRepo.Save(ctx, entry); saveErr != nil {
		return nil, fmt.Errorf("failed to save entry: %w", saveErr)
	}

	return entry, nil
}

func (uc *RecordEntryUseCase) validate(cmd RecordEntryCommand) error {
	if err := appcore.ValidateUUID("tenantID", cmd.TenantID); err != nil {
		return err
	}
	if err := appcore.ValidateUUID("actorID", cmd.ActorID); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("action", cmd.Action); err != nil {
		return err
	}
	return appcore.ValidateMaxLength("action", cmd.Action, auditlog.MaxActionLength)
}
