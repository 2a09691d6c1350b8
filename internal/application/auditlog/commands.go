package auditlog

import (
	"time"

	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// RecordEntryCommand appends an entry to the audit trail.
type RecordEntryCommand struct {
	TenantID   uuid.UUID
	ActorID    uuid.UUID
	Action     string
	TargetType string
	TargetID   string
	Detail     map[string]string
}

// CommandName returns the command name.
func (c RecordEntryCommand) CommandName() string { return "RecordAuditEntry" }

// DeleteLogsBatchCommand removes a set of entries in one batched call.
type DeleteLogsBatchCommand struct {
	EntryIDs []uuid.UUID
}

// CommandName returns the command name.
func (c DeleteLogsBatchCommand) CommandName() string { return "DeleteAuditLogsBatch" }

// PurgeExpiredCommand removes entries older than the cutoff, at most
// BatchSize per storage call.
type PurgeExpiredCommand struct {
	Cutoff    time.Time
	BatchSize int
}

// CommandName returns the command name.
func (c PurgeExpiredCommand) CommandName() string { return "PurgeExpiredAuditLogs" }
