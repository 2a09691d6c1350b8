package tenant

import (
	"time"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// Role describes what a member may do inside a tenant.
type Role string

// Member roles, from most to least privileged.
const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// CanReview reports whether the role may review permission requests.
func (r Role) CanReview() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Member links a user to a tenant with a role.
type Member struct {
	tenantID uuid.UUID
	userID   uuid.UUID
	role     Role
	joinedAt time.Time
}

// NewMember creates a tenant membership.
func NewMember(tenantID, userID uuid.UUID, role Role) (*Member, error) {
	if tenantID.IsZero() || userID.IsZero() {
		return nil, errs.ErrInvalidInput
	}
	if !ValidRole(role) {
		return nil, errs.ErrInvalidInput
	}

	return &Member{
		tenantID: tenantID,
		userID:   userID,
		role:     role,
		joinedAt: time.Now(),
	}, nil
}

// ReconstructMember rebuilds a membership from storage.
func ReconstructMember(tenantID, userID uuid.UUID, role Role, joinedAt time.Time) *Member {
	return &Member{
		tenantID: tenantID,
		userID:   userID,
		role:     role,
		joinedAt: joinedAt,
	}
}

// TenantID returns the tenant the membership belongs to.
func (m *Member) TenantID() uuid.UUID { return m.tenantID }

// UserID returns the member's user ID.
func (m *Member) UserID() uuid.UUID { return m.userID }

// Role returns the member's role.
func (m *Member) Role() Role { return m.role }

// JoinedAt returns when the user joined the tenant.
func (m *Member) JoinedAt() time.Time { return m.joinedAt }

// ChangeRole updates the member's role. The owner role can only be
// assigned through tenant creation or ownership transfer.
func (m *Member) ChangeRole(role Role) error {
	if !ValidRole(role) || role == RoleOwner {
		return errs.ErrInvalidInput
	}
	if m.role == RoleOwner {
		return errs.ErrInvalidTransition
	}
	m.role = role
	return nil
}
