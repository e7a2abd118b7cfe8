// Package optoerr defines the error vocabulary shared by every layer of the
// Optolink bridge. It generalizes the wrap-and-unwrap idiom the serial
// package borrows from github.com/daedaluz/goserial into a single Error type
// tagged with a Kind, so callers can branch on errors.Is/errors.As against a
// stable set of sentinels instead of parsing messages.
package optoerr

import "fmt"

// Kind classifies an Error so callers can distinguish, e.g., a caller-facing
// validation mistake from a transient link failure worth retrying.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnknownParameter
	KindChildIndexOutOfRange
	KindReadOnlyViolation
	KindUnalignedWrite
	KindEncoding
	KindDecoding
	KindUnitValidation
	KindProtocolResync
	KindSessionTimeout
	KindDeviceFailure
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindUnknownParameter:
		return "unknown parameter"
	case KindChildIndexOutOfRange:
		return "child index out of range"
	case KindReadOnlyViolation:
		return "read-only violation"
	case KindUnalignedWrite:
		return "unaligned write"
	case KindEncoding:
		return "encoding error"
	case KindDecoding:
		return "decoding error"
	case KindUnitValidation:
		return "unit validation error"
	case KindProtocolResync:
		return "protocol resync"
	case KindSessionTimeout:
		return "session timeout"
	case KindDeviceFailure:
		return "device failure"
	case KindLink:
		return "link error"
	default:
		return "error"
	}
}

// Error is the concrete error type raised by every package in this module.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is lets errors.Is(err, &optoerr.Error{Kind: K}) match any *Error of kind K,
// regardless of message or wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New constructs an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an Error of the given kind around a lower-level cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, msg: msg, err: cause}
}

// Sentinels usable with errors.Is — only Kind is compared, message and
// wrapped cause are ignored by Is above.
var (
	ErrUnknownParameter     = &Error{Kind: KindUnknownParameter}
	ErrChildIndexOutOfRange = &Error{Kind: KindChildIndexOutOfRange}
	ErrReadOnlyViolation    = &Error{Kind: KindReadOnlyViolation}
	ErrUnalignedWrite       = &Error{Kind: KindUnalignedWrite}
	ErrEncoding             = &Error{Kind: KindEncoding}
	ErrDecoding             = &Error{Kind: KindDecoding}
	ErrUnitValidation       = &Error{Kind: KindUnitValidation}
	ErrProtocolResync       = &Error{Kind: KindProtocolResync}
	ErrSessionTimeout       = &Error{Kind: KindSessionTimeout}
	ErrDeviceFailure        = &Error{Kind: KindDeviceFailure}
	ErrLink                 = &Error{Kind: KindLink}
)
