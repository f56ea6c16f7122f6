// Package persist implements the on-disk event log format described in
// spec.md §6: fixed-header, CRC-framed, 8-byte-padded records written to
// rotating forum-<unixSeconds>.events files.
package persist

import (
	"encoding/binary"
	"hash/crc32"
)

// Magic prefixes every frame so a reader can resynchronize after a
// truncated write; it never appears inside a well-formed BlobSize/CRC32
// pair because both are checked against it during replay.
const Magic uint64 = 0xFFFFFFFFFFFFFFFF

// HeaderSize is the fixed Magic+BlobSize+BlobCRC32 prefix, before Payload.
const HeaderSize = 8 + 4 + 4

// Frame wraps one encoded event blob with the CRC header spec.md §6
// describes.
type Frame struct {
	Payload []byte
}

// Encode renders f as the full on-disk byte sequence: header, payload, and
// zero padding out to the next 8-byte boundary.
func (f Frame) Encode() []byte {
	pad := padding(len(f.Payload))
	out := make([]byte, HeaderSize+len(f.Payload)+pad)

	binary.LittleEndian.PutUint64(out[0:8], Magic)
	binary.LittleEndian.PutUint32(out[8:12], uint32(len(f.Payload)))
	binary.LittleEndian.PutUint32(out[12:16], crc32.ChecksumIEEE(f.Payload))
	copy(out[16:], f.Payload)
	// out[16+len(payload):] is already zero from make().
	return out
}

func padding(payloadLen int) int {
	return (8 - payloadLen%8) % 8
}

// DecodeHeader reads the fixed header from the start of buf, returning the
// blob size, its recorded CRC, and whether the magic prefix matched.
func DecodeHeader(buf []byte) (blobSize uint32, crc uint32, ok bool) {
	if len(buf) < HeaderSize {
		return 0, 0, false
	}
	if binary.LittleEndian.Uint64(buf[0:8]) != Magic {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint32(buf[8:12]), binary.LittleEndian.Uint32(buf[12:16]), true
}

// FrameSize returns the total on-disk size (header + payload + padding)
// for a payload of blobSize bytes.
func FrameSize(blobSize uint32) int {
	return HeaderSize + int(blobSize) + padding(int(blobSize))
}
