package repository

import "github.com/forumkit/forumcore/pkg/status"

// checkLength validates s's rune count against [min, max], matching the
// VALUE_TOO_SHORT/VALUE_TOO_LONG split spec.md §4.6 names.
func checkLength(s string, min, max int) status.Code {
	n := len([]rune(s))
	switch {
	case n < min:
		return status.ValueTooShort
	case max > 0 && n > max:
		return status.ValueTooLong
	default:
		return status.OK
	}
}

// checkBinarySize validates a binary blob's byte length against a
// configured ceiling (user logo, tag UI blob).
func checkBinarySize(b []byte, max int) status.Code {
	if max > 0 && len(b) > max {
		return status.ValueTooLong
	}
	return status.OK
}
