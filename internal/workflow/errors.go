package workflow

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the engine can return. The transport
// layer maps kinds to HTTP statuses; the engine itself never retries and
// never mutates state on a failure path.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindPreconditionFailed
	KindValidationFailed
	KindConflict
	KindLocked
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindValidationFailed:
		return "validation_failed"
	case KindConflict:
		return "conflict"
	case KindLocked:
		return "locked"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func preconditionf(format string, args ...any) error {
	return &Error{Kind: KindPreconditionFailed, Message: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...any) error {
	return &Error{Kind: KindValidationFailed, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func lockedf(format string, args ...any) error {
	return &Error{Kind: KindLocked, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an engine error, or KindUnknown for
// anything else (storage failures and the like).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
