package domain

import dErrors "orgnet/pkg/domain-errors"

// Principal identifies the caller of a mutating operation. It is supplied by
// the host environment (JWT subject) and trusted as-is; the registries never
// verify signatures themselves.
//
// Usage: construct via ParsePrincipal at trust boundaries; direct casting
// bypasses validation.
type Principal string

// ParsePrincipal constructs a Principal from external input.
//
// Errors: returns CodeBadRequest when the value is empty; no other errors are
// expected.
func ParsePrincipal(s string) (Principal, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "principal cannot be empty")
	}
	return Principal(s), nil
}

// IsZero reports whether the principal is unset.
func (p Principal) IsZero() bool {
	return p == ""
}

// String returns the string representation of the principal.
func (p Principal) String() string {
	return string(p)
}
