// Package auditlog contains the operational audit-log entry.
package auditlog

import (
	"time"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// MaxActionLength bounds the action key.
const MaxActionLength = 100

// Entry is a single immutable audit record: who did what to which
// target inside a tenant. Entries are only ever created and deleted,
// never updated.
type Entry struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	actorID    uuid.UUID
	action     string
	targetType string
	targetID   string
	detail     map[string]string
	createdAt  time.Time
}

// NewEntry creates an audit entry stamped with the current time.
func NewEntry(tenantID, actorID uuid.UUID, action, targetType, targetID string, detail map[string]string) (*Entry, error) {
	if tenantID.IsZero() || actorID.IsZero() {
		return nil, errs.ErrInvalidInput
	}
	if action == "" || len(action) > MaxActionLength {
		return nil, errs.ErrInvalidInput
	}

	return &Entry{
		id:         uuid.NewUUID(),
		tenantID:   tenantID,
		actorID:    actorID,
		action:     action,
		targetType: targetType,
		targetID:   targetID,
		detail:     copyDetail(detail),
		createdAt:  time.Now(),
	}, nil
}

// Reconstruct rebuilds an entry from storage.
func Reconstruct(
	id, tenantID, actorID uuid.UUID,
	action, targetType, targetID string,
	detail map[string]string,
	createdAt time.Time,
) *Entry {
	return &Entry{
		id:         id,
		tenantID:   tenantID,
		actorID:    actorID,
		action:     action,
		targetType: targetType,
		targetID:   targetID,
		detail:     copyDetail(detail),
		createdAt:  createdAt,
	}
}

// ID returns the entry ID.
func (e *Entry) ID() uuid.UUID { return e.id }

// TenantID returns the tenant scope.
func (e *Entry) TenantID() uuid.UUID { return e.tenantID }

// ActorID returns the acting user's ID.
func (e *Entry) ActorID() uuid.UUID { return e.actorID }

// Action returns the action key, e.g. "user.login" or "permission.reject".
func (e *Entry) Action() string { return e.action }

// TargetType returns the kind of object acted on.
func (e *Entry) TargetType() string { return e.targetType }

// TargetID returns the identifier of the object acted on.
func (e *Entry) TargetID() string { return e.targetID }

// Detail returns a copy of the structured detail map.
func (e *Entry) Detail() map[string]string {
	return copyDetail(e.detail)
}

// CreatedAt returns when the entry was recorded.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

func copyDetail(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
