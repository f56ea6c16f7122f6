package events

import (
	"encoding/binary"
	"net"
	"time"

	"github.com/forumkit/forumcore/pkg/id"
)

// Context is the per-event metadata block common to every event type:
// when it happened, who performed it, and from which address.
type Context struct {
	Timestamp      time.Time
	PerformingUser id.ID
	IP             net.IP
}

// encode appends the context block to dst: an 8-byte unix-second timestamp,
// a 16-byte user id, and a 17-byte tagged IP address (tag 0 = none, 4 =
// IPv4 in the low 4 bytes, 6 = IPv6 in all 16).
func (c Context) encode(dst []byte) []byte {
	var ts [8]byte
	binary.LittleEndian.PutUint64(ts[:], uint64(c.Timestamp.Unix()))
	dst = append(dst, ts[:]...)
	dst = append(dst, c.PerformingUser.Bytes()...)

	var tag byte
	var octets [16]byte
	if v4 := c.IP.To4(); v4 != nil {
		tag = 4
		copy(octets[:4], v4)
	} else if v6 := c.IP.To16(); v6 != nil {
		tag = 6
		copy(octets[:], v6)
	}
	dst = append(dst, tag)
	dst = append(dst, octets[:]...)
	return dst
}

func unixSeconds(v uint64) time.Time {
	return time.Unix(int64(v), 0).UTC()
}
