package events

import (
	"encoding/binary"

	"github.com/forumkit/forumcore/pkg/id"
)

// Payload accumulates the EventData bytes that follow the common header and
// context block for one event. Every integer is little-endian, matching the
// frame header's BlobSize/CRC32 encoding in pkg/persist.
type Payload struct {
	buf []byte
}

// NewPayload returns an empty builder with cap bytes preallocated.
func NewPayload(cap int) *Payload {
	return &Payload{buf: make([]byte, 0, cap)}
}

// ID appends a 16-byte entity id.
func (p *Payload) ID(v id.ID) *Payload {
	p.buf = append(p.buf, v.Bytes()...)
	return p
}

// String appends a u32 length followed by the raw UTF-8 bytes.
func (p *Payload) String(s string) *Payload {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	p.buf = append(p.buf, n[:]...)
	p.buf = append(p.buf, s...)
	return p
}

// Bytes appends a u32 length followed by raw bytes (used for binary blobs
// such as a user logo).
func (p *Payload) Bytes(b []byte) *Payload {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(b)))
	p.buf = append(p.buf, n[:]...)
	p.buf = append(p.buf, b...)
	return p
}

// U16 appends a little-endian uint16.
func (p *Payload) U16(v uint16) *Payload {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	p.buf = append(p.buf, b[:]...)
	return p
}

// I16 appends a little-endian int16.
func (p *Payload) I16(v int16) *Payload {
	return p.U16(uint16(v))
}

// U32 appends a little-endian uint32.
func (p *Payload) U32(v uint32) *Payload {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	p.buf = append(p.buf, b[:]...)
	return p
}

// I64 appends a little-endian int64 (used for unix-second timestamps and
// durations).
func (p *Payload) I64(v int64) *Payload {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	p.buf = append(p.buf, b[:]...)
	return p
}

// Build returns the accumulated EventData bytes.
func (p *Payload) Build() []byte {
	return p.buf
}
