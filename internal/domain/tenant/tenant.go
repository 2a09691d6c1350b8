// Package tenant contains the tenant entity and membership rules.
package tenant

import (
	"regexp"
	"time"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// Maximum lengths for tenant fields.
const (
	MaxNameLength = 100
	MaxSlugLength = 50
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Tenant is an isolation boundary: users, permission requests and audit
// logs are always scoped to exactly one tenant.
type Tenant struct {
	id        uuid.UUID
	name      string
	slug      string
	ownerID   uuid.UUID
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

// NewTenant creates a tenant owned by the given user.
func NewTenant(name, slug string, ownerID uuid.UUID) (*Tenant, error) {
	if name == "" || len(name) > MaxNameLength {
		return nil, errs.ErrInvalidInput
	}
	if !ValidSlug(slug) {
		return nil, errs.ErrInvalidInput
	}
	if ownerID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now()
	return &Tenant{
		id:        uuid.NewUUID(),
		name:      name,
		slug:      slug,
		ownerID:   ownerID,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a tenant from storage.
func Reconstruct(
	id uuid.UUID,
	name, slug string,
	ownerID uuid.UUID,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Tenant {
	return &Tenant{
		id:        id,
		name:      name,
		slug:      slug,
		ownerID:   ownerID,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ValidSlug reports whether s is a usable tenant slug.
func ValidSlug(s string) bool {
	return s != "" && len(s) <= MaxSlugLength && slugPattern.MatchString(s)
}

// ID returns the tenant ID.
func (t *Tenant) ID() uuid.UUID { return t.id }

// Name returns the display name.
func (t *Tenant) Name() string { return t.name }

// Slug returns the URL-safe identifier.
func (t *Tenant) Slug() string { return t.slug }

// OwnerID returns the owning user's ID.
func (t *Tenant) OwnerID() uuid.UUID { return t.ownerID }

// IsActive reports whether the tenant is active.
func (t *Tenant) IsActive() bool { return t.isActive }

// CreatedAt returns the creation time.
func (t *Tenant) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns the last update time.
func (t *Tenant) UpdatedAt() time.Time { return t.updatedAt }

// Rename changes the tenant's display name.
func (t *Tenant) Rename(name string) error {
	if name == "" || len(name) > MaxNameLength {
		return errs.ErrInvalidInput
	}
	t.name = name
	t.updatedAt = time.Now()
	return nil
}

// SetActive toggles the tenant's active flag.
func (t *Tenant) SetActive(isActive bool) {
	t.isActive = isActive
	t.updatedAt = time.Now()
}
