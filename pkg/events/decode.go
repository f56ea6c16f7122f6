package events

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/forumkit/forumcore/pkg/id"
)

// Decoded is a parsed event blob: the type/version header, context, and a
// Reader positioned at the start of EventData.
type Decoded struct {
	Type           Type
	EventVersion   uint16
	ContextVersion uint16
	Context        Context
	Data           *Reader
}

// Decode parses a blob produced by Encode.
func Decode(blob []byte) (Decoded, error) {
	if len(blob) < 8+41 {
		return Decoded{}, fmt.Errorf("events: blob too short (%d bytes)", len(blob))
	}
	d := Decoded{
		Type:           Type(binary.LittleEndian.Uint32(blob[0:4])),
		EventVersion:   binary.LittleEndian.Uint16(blob[4:6]),
		ContextVersion: binary.LittleEndian.Uint16(blob[6:8]),
	}
	d.Context.Timestamp = unixSeconds(binary.LittleEndian.Uint64(blob[8:16]))
	d.Context.PerformingUser = id.FromBytes(blob[16:32])

	tag := blob[32]
	octets := blob[33:49]
	switch tag {
	case 4:
		d.Context.IP = net.IPv4(octets[0], octets[1], octets[2], octets[3])
	case 6:
		ip := make(net.IP, 16)
		copy(ip, octets)
		d.Context.IP = ip
	}

	d.Data = &Reader{buf: blob[49:]}
	return d, nil
}

// Reader parses length-prefixed EventData fields in the order Payload
// wrote them.
type Reader struct {
	buf []byte
	err error
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

func (r *Reader) take(n int) []byte {
	if r.err != nil || len(r.buf) < n {
		if r.err == nil {
			r.err = fmt.Errorf("events: short read, need %d have %d", n, len(r.buf))
		}
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b
}

// ID reads a 16-byte entity id.
func (r *Reader) ID() id.ID {
	b := r.take(16)
	if b == nil {
		return id.Zero
	}
	return id.FromBytes(b)
}

// String reads a u32-length-prefixed UTF-8 string.
func (r *Reader) String() string {
	n := r.U32()
	b := r.take(int(n))
	if b == nil {
		return ""
	}
	return string(b)
}

// Bytes reads a u32-length-prefixed byte slice.
func (r *Reader) Bytes() []byte {
	n := r.U32()
	b := r.take(int(n))
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// I16 reads a little-endian int16.
func (r *Reader) I16() int16 { return int16(r.U16()) }

// U32 reads a little-endian uint32.
func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// I64 reads a little-endian int64.
func (r *Reader) I64() int64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(b))
}
