// Package apperr categorizes business errors so handlers can map them to
// transport status codes without inspecting message strings.
package apperr

import "errors"

type Kind int

const (
	// KindValidation: malformed or out-of-range input. Caller's fault,
	// retrying the same call cannot succeed.
	KindValidation Kind = iota
	// KindInvalidTransition: state machine violation. Caller must re-fetch
	// current state before retrying.
	KindInvalidTransition
	// KindSlotUnavailable: lost a race for a slot. Caller should re-list
	// and pick another.
	KindSlotUnavailable
	// KindNotFound: referenced entity does not exist.
	KindNotFound
	// KindUpstream: persistence or identity collaborator unreachable or
	// errored.
	KindUpstream
)

// Retryable reports whether an automatic retry with backoff is appropriate.
// Only upstream failures qualify.
func (k Kind) Retryable() bool {
	return k == KindUpstream
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindSlotUnavailable:
		return "slot_unavailable"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream_failure"
	default:
		return "unknown"
	}
}

// Error is a sentinel business error carrying a taxonomy kind.
type Error struct {
	kind Kind
	msg  string
}

// New creates a sentinel error. Usecases declare these as package vars so
// callers can match with errors.Is.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

// KindOf extracts the kind from an error chain. Errors that carry no kind
// are treated as upstream failures: they originate from the store or a
// collaborator, not from the caller.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindUpstream
}
