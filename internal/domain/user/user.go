// Package user contains the user entity and its invariants.
package user

import (
	"time"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// User represents an account known to Gatehouse. The authoritative
// credential store is the external identity provider; ExternalID links
// the local record to it.
type User struct {
	id            uuid.UUID
	externalID    string
	username      string
	email         string
	displayName   string
	isSystemAdmin bool
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

// NewUser creates a new active user linked to an identity-provider subject.
func NewUser(externalID, username, email, displayName string) (*User, error) {
	if externalID == "" || username == "" || email == "" {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now()
	return &User{
		id:          uuid.NewUUID(),
		externalID:  externalID,
		username:    username,
		email:       email,
		displayName: displayName,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a user from storage.
func Reconstruct(
	id uuid.UUID,
	externalID, username, email, displayName string,
	isSystemAdmin, isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:            id,
		externalID:    externalID,
		username:      username,
		email:         email,
		displayName:   displayName,
		isSystemAdmin: isSystemAdmin,
		isActive:      isActive,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the internal user ID.
func (u *User) ID() uuid.UUID { return u.id }

// ExternalID returns the identity-provider subject.
func (u *User) ExternalID() string { return u.externalID }

// Username returns the username.
func (u *User) Username() string { return u.username }

// Email returns the email address.
func (u *User) Email() string { return u.email }

// DisplayName returns the display name.
func (u *User) DisplayName() string { return u.displayName }

// IsSystemAdmin reports whether the user is a system administrator.
func (u *User) IsSystemAdmin() bool { return u.isSystemAdmin }

// IsActive reports whether the account is active.
func (u *User) IsActive() bool { return u.isActive }

// CreatedAt returns the creation time.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last update time.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// UpdateProfile applies optional profile changes. At least one field
// must be provided and non-empty.
func (u *User) UpdateProfile(displayName, email *string) error {
	updated := false

	if displayName != nil && *displayName != "" {
		u.displayName = *displayName
		updated = true
	}
	if email != nil && *email != "" {
		u.email = *email
		updated = true
	}

	if !updated {
		return errs.ErrInvalidInput
	}

	u.updatedAt = time.Now()
	return nil
}

// SetAdmin grants or revokes system administrator rights.
func (u *User) SetAdmin(isAdmin bool) {
	u.isSystemAdmin = isAdmin
	u.updatedAt = time.Now()
}

// SetActive toggles the account's active flag (soft delete).
func (u *User) SetActive(isActive bool) {
	u.isActive = isActive
	u.updatedAt = time.Now()
}

// UpdateFromSync applies attributes pushed from the identity provider.
// It returns true when anything changed.
func (u *User) UpdateFromSync(username, email, displayName string, isActive bool) bool {
	updated := false

	if u.username != username {
		u.username = username
		updated = true
	}
	if u.email != email {
		u.email = email
		updated = true
	}
	if u.displayName != displayName {
		u.displayName = displayName
		updated = true
	}
	if u.isActive != isActive {
		u.isActive = isActive
		updated = true
	}

	if updated {
		u.updatedAt = time.Now()
	}
	return updated
}
