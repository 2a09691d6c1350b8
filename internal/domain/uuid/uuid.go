// Package uuid provides a string-backed UUID type used across the domain.
package uuid

import (
	"fmt"

	"github.com/google/uuid"
)

// UUID is a string-backed UUID identifier.
type UUID string

// NewUUID generates a new random UUID.
func NewUUID() UUID {
	return UUID(uuid.New().String())
}

// ParseUUID parses a string into a UUID, validating its format.
func ParseUUID(s string) (UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid UUID %q: %w", s, err)
	}
	return UUID(parsed.String()), nil
}

// MustParseUUID parses a string into a UUID or panics.
func MustParseUUID(s string) UUID {
	id, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation.
func (u UUID) String() string {
	return string(u)
}

// IsZero reports whether the UUID is empty.
func (u UUID) IsZero() bool {
	return u == ""
}

// IsValid reports whether the UUID has a valid format.
func (u UUID) IsValid() bool {
	if u.IsZero() {
		return false
	}
	_, err := uuid.Parse(string(u))
	return err == nil
}
