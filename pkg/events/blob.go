package events

import "encoding/binary"

// Encode assembles one event's full payload (spec.md §6): EventType,
// EventVersion, ContextVersion, the Context block, then eventData. The
// result is handed to pkg/persist as the frame's Payload; persist adds the
// magic/size/crc header and padding, it does not look inside this blob.
func Encode(t Type, ctx Context, eventData []byte) []byte {
	out := make([]byte, 0, 8+24+len(eventData))

	var typ [4]byte
	binary.LittleEndian.PutUint32(typ[:], uint32(t))
	out = append(out, typ[:]...)

	var ver [2]byte
	binary.LittleEndian.PutUint16(ver[:], CurrentVersion)
	out = append(out, ver[:]...)

	var cver [2]byte
	binary.LittleEndian.PutUint16(cver[:], ContextVersion)
	out = append(out, cver[:]...)

	out = ctx.encode(out)
	out = append(out, eventData...)
	return out
}
