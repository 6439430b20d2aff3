// Package midentifier converts the 128-bit identifiers used throughout
// the core between their three wire shapes: 16 raw bytes (RPC surface),
// canonical 8-4-4-4-12 hex (REST surface), and the google/uuid.UUID value
// used internally for generation and comparison.
package midentifier

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is a 128-bit identifier. The zero value is the nil ID.
type ID uuid.UUID

// Nil is the all-zero ID, never a valid identifier for a stored row.
var Nil ID

// New generates a fresh random (v4-style) identifier.
func New() ID {
	return ID(uuid.New())
}

// String renders the canonical 8-4-4-4-12 lowercase hex form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Bytes returns the 16 raw bytes used on the RPC surface.
func (id ID) Bytes() []byte {
	b := id
	return b[:]
}

// IsNil reports whether id is the zero value.
func (id ID) IsNil() bool {
	return id == Nil
}

// MarshalText renders the canonical hex form, so IDs appear as hex
// strings in JSON bodies and map keys.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the canonical hex form.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := FromHex(string(b))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}

// FromHex parses a canonical 8-4-4-4-12 hex string into an ID.
func FromHex(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}

	return ID(u), nil
}

// FromBytes parses exactly 16 raw bytes into an ID.
func FromBytes(b []byte) (ID, error) {
	if len(b) != 16 {
		return Nil, fmt.Errorf("invalid id length %d, want 16", len(b))
	}

	u, err := uuid.FromBytes(b)
	if err != nil {
		return Nil, err
	}

	return ID(u), nil
}

// MustFromHex is FromHex but panics on error; reserved for constants and
// tests where the input is known-good.
func MustFromHex(s string) ID {
	id, err := FromHex(s)
	if err != nil {
		panic(err)
	}

	return id
}
