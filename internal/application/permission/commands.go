package permission

import "github.com/gatehouse-io/gatehouse/internal/domain/uuid"

// CreateRequestCommand asks for a permission inside a tenant.
type CreateRequestCommand struct {
	TenantID      uuid.UUID
	RequesterID   uuid.UUID
	Permission    string
	Justification string
}

// CommandName returns the command name.
func (c CreateRequestCommand) CommandName() string { return "CreatePermissionRequest" }

// ApproveRequestCommand approves a pending request.
type ApproveRequestCommand struct {
	RequestID  uuid.UUID
	ReviewerID uuid.UUID
	Note       string
}

// CommandName returns the command name.
func (c ApproveRequestCommand) CommandName() string { return "ApprovePermissionRequest" }

// RejectRequestCommand rejects a pending request.
type RejectRequestCommand struct {
	RequestID  uuid.UUID
	ReviewerID uuid.UUID
	Note       string
}

// CommandName returns the command name.
func (c RejectRequestCommand) CommandName() string { return "RejectPermissionRequest" }

// BulkRejectRequestsCommand rejects a set of pending requests at once.
type BulkRejectRequestsCommand struct {
	RequestIDs []uuid.UUID
	ReviewerID uuid.UUID
	Note       string
}

// CommandName returns the command name.
func (c BulkRejectRequestsCommand) CommandName() string { return "BulkRejectPermissionRequests" }
