// Package domainerrors defines the stable, machine-checkable error vocabulary
// shared by all registries. Services return these so transports can translate
// them without string matching, and callers can branch on Code.
//
// Every error is terminal for the invocation that produced it: the operation
// is aborted with no partial state change and no internal retry.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks malformed or out-of-range input (empty required
	// field, non-positive amount, inverted date range).
	CodeValidation Code = "validation_failed"
	// CodeNotFound marks an unknown record id or absent natural key.
	CodeNotFound Code = "not_found"
	// CodeDuplicateKey marks a natural-key collision; reservations are
	// permanent, so this fires even against revoked records.
	CodeDuplicateKey Code = "duplicate_key"
	// CodeUnauthorized marks a caller lacking the required ownership or role.
	CodeUnauthorized Code = "unauthorized"
	// CodeInvalidTransition marks a status change not permitted from the
	// record's current state, including re-applying a terminal status.
	CodeInvalidTransition Code = "invalid_transition"
	// CodeInsufficientFunds marks an attached value below the required amount.
	CodeInsufficientFunds Code = "insufficient_funds"
	// CodeBadRequest marks transport-level input that never reached domain
	// validation (unparseable body, empty principal).
	CodeBadRequest Code = "bad_request"
	// CodeInternal marks invariant violations and infrastructure failures.
	CodeInternal Code = "internal_error"
)

// Error is a domain error with a stable code.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error that records an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the domain code from err, or CodeInternal when err carries
// no domain error.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicateKey:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodeInvalidTransition:
		return http.StatusConflict
	case CodeInsufficientFunds:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
