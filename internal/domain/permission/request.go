// Package permission contains the permission-request entity and its
// pending/approved/rejected lifecycle.
package permission

import (
	"time"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// Status of a permission request.
type Status string

// Request statuses. Pending is the only non-terminal state.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidStatus reports whether s is a known status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// MaxJustificationLength bounds the requester-supplied justification.
const MaxJustificationLength = 500

// Request is a user's ask for a permission inside a tenant. Once
// reviewed it is immutable.
type Request struct {
	id            uuid.UUID
	tenantID      uuid.UUID
	requesterID   uuid.UUID
	permission    string
	justification string
	status        Status
	reviewerID    uuid.UUID
	reviewNote    string
	createdAt     time.Time
	reviewedAt    time.Time
}

// NewRequest creates a pending permission request.
func NewRequest(tenantID, requesterID uuid.UUID, permission, justification string) (*Request, error) {
	if tenantID.IsZero() || requesterID.IsZero() || permission == "" {
		return nil, errs.ErrInvalidInput
	}
	if len(justification) > MaxJustificationLength {
		return nil, errs.ErrInvalidInput
	}

	return &Request{
		id:            uuid.NewUUID(),
		tenantID:      tenantID,
		requesterID:   requesterID,
		permission:    permission,
		justification: justification,
		status:        StatusPending,
		createdAt:     time.Now(),
	}, nil
}

// Reconstruct rebuilds a request from storage.
func Reconstruct(
	id, tenantID, requesterID uuid.UUID,
	permission, justification string,
	status Status,
	reviewerID uuid.UUID,
	reviewNote string,
	createdAt, reviewedAt time.Time,
) *Request {
	return &Request{
		id:            id,
		tenantID:      tenantID,
		requesterID:   requesterID,
		permission:    permission,
		justification: justification,
		status:        status,
		reviewerID:    reviewerID,
		reviewNote:    reviewNote,
		createdAt:     createdAt,
		reviewedAt:    reviewedAt,
	}
}

// ID returns the request ID.
func (r *Request) ID() uuid.UUID { return r.id }

// TenantID returns the tenant scope.
func (r *Request) TenantID() uuid.UUID { return r.tenantID }

// RequesterID returns the requesting user's ID.
func (r *Request) RequesterID() uuid.UUID { return r.requesterID }

// Permission returns the requested permission key.
func (r *Request) Permission() string { return r.permission }

// Justification returns the requester's justification text.
func (r *Request) Justification() string { return r.justification }

// Status returns the current status.
func (r *Request) Status() Status { return r.status }

// ReviewerID returns the reviewing user's ID, zero while pending.
func (r *Request) ReviewerID() uuid.UUID { return r.reviewerID }

// ReviewNote returns the reviewer's note, empty while pending.
func (r *Request) ReviewNote() string { return r.reviewNote }

// CreatedAt returns when the request was made.
func (r *Request) CreatedAt() time.Time { return r.createdAt }

// ReviewedAt returns when the request was reviewed, zero while pending.
func (r *Request) ReviewedAt() time.Time { return r.reviewedAt }

// IsPending reports whether the request has not been reviewed yet.
func (r *Request) IsPending() bool { return r.status == StatusPending }

// Approve transitions a pending request to approved.
func (r *Request) Approve(reviewerID uuid.UUID, note string) error {
	return r.review(StatusApproved, reviewerID, note)
}

// Reject transitions a pending request to rejected.
func (r *Request) Reject(reviewerID uuid.UUID, note string) error {
	return r.review(StatusRejected, reviewerID, note)
}

func (r *Request) review(to Status, reviewerID uuid.UUID, note string) error {
	if reviewerID.IsZero() {
		return errs.ErrInvalidInput
	}
	if r.status != StatusPending {
		return errs.ErrInvalidState
	}
	r.status = to
	r.reviewerID = reviewerID
	r.reviewNote = note
	r.reviewedAt = time.Now()
	return nil
}
