package apierrors

import (
	"errors"
	"fmt"
)

// Kind classifies remote-boundary failures.
type Kind int

const (
	// KindRemote is a rejection reported by the remote store
	// (success=false envelope); the message passes through verbatim.
	KindRemote Kind = iota
	// KindNotFound means the operation targeted a row that no longer
	// exists remotely. It surfaces exactly like KindRemote in store
	// error slots; the distinction only matters to callers that ask.
	KindNotFound
	// KindDecode means a raw row could not be mapped to a typed record.
	KindDecode
	// KindUnauthorized means an ownership guard rejected the operation.
	KindUnauthorized
)

// Error is the error type returned by every remote access function.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Remote wraps a success=false envelope message.
func Remote(message string) error {
	return &Error{Kind: KindRemote, Message: message}
}

// NotFound reports a missing remote row.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Decode reports a row that failed typed decoding.
func Decode(what string, err error) error {
	return &Error{Kind: KindDecode, Message: "failed to decode " + what, Err: err}
}

// Unauthorized reports an ownership-guard rejection.
func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Wrap attaches a transport-level cause to a remote failure.
func Wrap(message string, err error) error {
	return &Error{Kind: KindRemote, Message: message, Err: err}
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a missing-row failure.
func IsNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNotFound
}

// IsDecode reports whether err is a decode failure.
func IsDecode(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindDecode
}

// IsUnauthorized reports whether err is an ownership rejection.
func IsUnauthorized(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindUnauthorized
}
