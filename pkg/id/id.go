// Package id provides the 128-bit entity identifier used across every
// collection in the core: a thin wrapper over github.com/google/uuid that
// compares ids as raw bytes and renders both the dashed (36-char) and
// compact (32-char) hex string forms named in the data model.
package id

import (
	"github.com/google/uuid"
)

// ID is a 128-bit entity identifier. The zero value is never assigned to a
// live entity; it is used as a sentinel for "no id" in optional fields.
type ID [16]byte

// Zero is the all-zero sentinel id.
var Zero ID

// New mints a fresh random (v4) id.
func New() ID {
	return ID(uuid.New())
}

// Parse accepts both dashed and compact hex forms.
func Parse(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Zero, err
	}
	return ID(u), nil
}

// IsZero reports whether this is the sentinel id.
func (i ID) IsZero() bool {
	return i == Zero
}

// String renders the dashed hex form, e.g. "xxxxxxxx-xxxx-...".
func (i ID) String() string {
	return uuid.UUID(i).String()
}

// Compact renders the 32-char hex form with no dashes.
func (i ID) Compact() string {
	var buf [32]byte
	const hex = "0123456789abcdef"
	for n, b := range i {
		buf[n*2] = hex[b>>4]
		buf[n*2+1] = hex[b&0x0f]
	}
	return string(buf[:])
}

// Bytes returns the 16 raw bytes, in the order written to persistence frames.
func (i ID) Bytes() []byte {
	return i[:]
}

// FromBytes reads a 16-byte slice as an ID. Panics if b is shorter than 16
// bytes; callers in the replay path validate frame sizes before calling this.
func FromBytes(b []byte) ID {
	var i ID
	copy(i[:], b[:16])
	return i
}
