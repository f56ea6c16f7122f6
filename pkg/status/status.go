// Package status defines the typed result codes the repository façade
// returns instead of raw errors, so that validation and domain outcomes stay
// a distinct surface from fatal/infrastructure errors (see pkg/fatal).
package status

// Code is a repository operation outcome.
type Code int

const (
	OK Code = iota
	InvalidParameters
	ValueTooShort
	ValueTooLong
	AlreadyExists
	NotFound
	NoEffect
	NotAllowed
	CircularReferenceNotAllowed
	NotUpdatedSinceLastCheck
	UserWithSameAuthAlreadyExists
	Throttled
)

var names = map[Code]string{
	OK:                            "OK",
	InvalidParameters:             "INVALID_PARAMETERS",
	ValueTooShort:                 "VALUE_TOO_SHORT",
	ValueTooLong:                  "VALUE_TOO_LONG",
	AlreadyExists:                 "ALREADY_EXISTS",
	NotFound:                      "NOT_FOUND",
	NoEffect:                      "NO_EFFECT",
	NotAllowed:                    "NOT_ALLOWED",
	CircularReferenceNotAllowed:   "CIRCULAR_REFERENCE_NOT_ALLOWED",
	NotUpdatedSinceLastCheck:      "NOT_UPDATED_SINCE_LAST_CHECK",
	UserWithSameAuthAlreadyExists: "USER_WITH_SAME_AUTH_ALREADY_EXISTS",
	Throttled:                     "THROTTLED",
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "UNKNOWN"
}

// OK reports whether the code represents success.
func (c Code) OK() bool { return c == OK }
