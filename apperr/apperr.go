// Package apperr defines the failure taxonomy shared by the middleware chain,
// the domain services, and the REST layer. Every user-visible failure maps to
// exactly one Kind, one HTTP status, and one message; internal causes are
// carried for logging but never serialized to clients.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnauthenticated means the bearer credential is missing or failed
	// verification. Verification failures are never distinguished from a
	// missing token.
	KindUnauthenticated Kind = iota + 1

	// KindMissingParam means a required body field is absent or empty.
	KindMissingParam

	// KindInvalidParam means a path parameter is malformed.
	KindInvalidParam

	// KindNotFound means the requested row does not exist for the caller.
	KindNotFound

	// KindConflict means a uniqueness constraint would be violated.
	KindConflict

	// KindForbidden means the credentials were recognized but rejected.
	KindForbidden

	// KindInternal is the catch-all for unexpected storage or runtime failures.
	KindInternal
)

// Error is a classified failure. Msg is safe to show to callers; Cause is the
// wrapped internal error, if any.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Unauthenticated reports a missing or unverifiable bearer credential.
func Unauthenticated() error {
	return &Error{Kind: KindUnauthenticated, Msg: "you must authenticate first"}
}

// MissingParam reports an absent or empty required body field.
func MissingParam(field string) error {
	return &Error{Kind: KindMissingParam, Msg: "Missing param: " + field}
}

// InvalidParam reports a malformed path parameter.
func InvalidParam(name string) error {
	return &Error{Kind: KindInvalidParam, Msg: "Invalid param: " + name}
}

// NotFound reports that the requested row does not exist for the caller.
func NotFound() error {
	return &Error{Kind: KindNotFound, Msg: "Data not found"}
}

// Conflict reports a uniqueness violation, e.g. Conflict("Username").
func Conflict(what string) error {
	return &Error{Kind: KindConflict, Msg: what + " already exists"}
}

// Forbidden reports rejected credentials.
func Forbidden() error {
	return &Error{Kind: KindForbidden, Msg: "access denied"}
}

// Internal wraps an unexpected failure. The cause is retained for server-side
// logs; callers only ever see the generic message.
func Internal(cause error) error {
	return &Error{Kind: KindInternal, Msg: "internal server error", Cause: cause}
}

// KindOf extracts the Kind from err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps err to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindMissingParam, KindInvalidParam:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-visible message for err. Unclassified errors read
// as an internal server error so implementation details never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal server error"
}
