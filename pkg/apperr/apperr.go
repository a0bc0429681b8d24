// Package apperr defines the application error taxonomy and its HTTP mapping.
//
// Every failure surfaced to a client carries a stable Detail message. Token
// verification failures additionally carry a Reason that is logged but never
// serialised, so expired, forged, and malformed credentials stay
// indistinguishable to callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCredentials
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindValidation
	KindInvalidTransition
)

// Error is the taxonomy error. Detail is client-safe; Reason is log-only.
type Error struct {
	Kind   Kind
	Detail string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Detail, e.Reason)
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidCredentials is the single opaque failure for any bad token:
// forged signature, malformed payload, missing expiry, elapsed expiry, or
// absent identity claim. The reason distinguishes them in logs only.
func InvalidCredentials(reason string, cause error) *Error {
	return &Error{
		Kind:   KindInvalidCredentials,
		Detail: "Could not validate credentials",
		Reason: reason,
		Err:    cause,
	}
}

// Unauthenticated covers a missing or unresolvable principal.
func Unauthenticated(detail string) *Error {
	return &Error{Kind: KindUnauthenticated, Detail: detail}
}

// Forbidden covers an authenticated principal with insufficient role or
// ownership.
func Forbidden(detail string) *Error {
	return &Error{Kind: KindForbidden, Detail: detail}
}

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func Conflict(detail string) *Error {
	return &Error{Kind: KindConflict, Detail: detail}
}

func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

// InvalidTransition rejects an order-status write not permitted by the
// transition table.
func InvalidTransition(from, to string) *Error {
	return &Error{
		Kind:   KindInvalidTransition,
		Detail: fmt.Sprintf("Cannot move order from %s to %s", from, to),
	}
}

// KindOf extracts the taxonomy kind, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err belongs to the given kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// Detail returns the client-safe message for err. Foreign errors collapse
// to a generic message so internals never leak.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return "Internal Server Error"
}

// Reason returns the log-only sub-reason, if any.
func Reason(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindInvalidCredentials, KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation, KindInvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
