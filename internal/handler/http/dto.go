// Package httphandler contains the HTTP API handlers.
package httphandler

import (
	"time"

	"github.com/gatehouse-io/gatehouse/internal/domain/auditlog"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/user"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// UserDTO represents user data in API responses.
type UserDTO struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name,omitempty"`
	IsSystemAdmin bool      `json:"is_system_admin"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToUserDTO converts a domain User to a UserDTO.
func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:            u.ID(),
		Username:      u.Username(),
		Email:         u.Email(),
		DisplayName:   u.DisplayName(),
		IsSystemAdmin: u.IsSystemAdmin(),
		IsActive:      u.IsActive(),
		CreatedAt:     u.CreatedAt(),
	}
}

// PermissionRequestDTO represents a permission request in API responses.
type PermissionRequestDTO struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"tenant_id"`
	RequesterID   uuid.UUID  `json:"requester_id"`
	Permission    string     `json:"permission"`
	Justification string     `json:"justification,omitempty"`
	Status        string     `json:"status"`
	ReviewerID    *uuid.UUID `json:"reviewer_id,omitempty"`
	ReviewNote    string     `json:"review_note,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}

// ToPermissionRequestDTO converts a domain Request to a DTO.
func ToPermissionRequestDTO(r *permission.Request) PermissionRequestDTO {
	dto := PermissionRequestDTO{
		ID:            r.ID(),
		TenantID:      r.TenantID(),
		RequesterID:   r.RequesterID(),
		Permission:    r.Permission(),
		Justification: r.Justification(),
		Status:        string(r.Status()),
		ReviewNote:    r.ReviewNote(),
		CreatedAt:     r.CreatedAt(),
	}

	if !r.ReviewerID().IsZero() {
		reviewerID := r.ReviewerID()
		dto.ReviewerID = &reviewerID
	}
	if !r.ReviewedAt().IsZero() {
		reviewedAt := r.ReviewedAt()
		dto.ReviewedAt = &reviewedAt
	}

	return dto
}

// ToPermissionRequestDTOs converts a slice of requests.
func ToPermissionRequestDTOs(requests []*permission.Request) []PermissionRequestDTO {
	dtos := make([]PermissionRequestDTO, 0, len(requests))
	for _, r := range requests {
		dtos = append(dtos, ToPermissionRequestDTO(r))
	}
	return dtos
}

// AuditEntryDTO represents an audit log entry in API responses.
type AuditEntryDTO struct {
	ID         uuid.UUID         `json:"id"`
	TenantID   uuid.UUID         `json:"tenant_id"`
	ActorID    uuid.UUID         `json:"actor_id"`
	Action     string            `json:"action"`
	TargetType string            `json:"target_type,omitempty"`
	TargetID   string            `json:"target_id,omitempty"`
	Detail     map[string]string `json:"detail,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ToAuditEntryDTO converts a domain Entry to a DTO.
func ToAuditEntryDTO(e *auditlog.Entry) AuditEntryDTO {
	return AuditEntryDTO{
		ID:         e.ID(),
		TenantID:   e.TenantID(),
		ActorID:    e.ActorID(),
		Action:     e.Action(),
		TargetType: e.TargetType(),
		TargetID:   e.TargetID(),
		Detail:     e.Detail(),
		CreatedAt:  e.CreatedAt(),
	}
}

// ToAuditEntryDTOs converts a slice of entries.
func ToAuditEntryDTOs(entries []*auditlog.Entry) []AuditEntryDTO {
	dtos := make([]AuditEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, ToAuditEntryDTO(e))
	}
	return dtos
}

// PageDTO wraps a listing with its pagination info.
type PageDTO[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
