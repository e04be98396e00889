package certificate

import (
	"time"

	id "orgnet/pkg/domain"
)

// Registry is the name this registry reports in events and metrics.
const Registry = "certificate"

// Status is the certificate lifecycle state.
type Status string

const (
	StatusValid   Status = "valid"
	StatusRevoked Status = "revoked"
)

// CanTransitionTo reports whether the status change is permitted. Revocation
// is one-way and terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusValid && next == StatusRevoked
}

// IsValid reports whether the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == StatusValid || s == StatusRevoked
}

// Certificate is one issued certificate record. ID, Issuer, and CreatedAt are
// immutable after creation; only Status mutates.
type Certificate struct {
	ID uint64
	// Name labels the certificate holder or subject.
	Name string
	// ContentHash is the natural key: globally unique across all
	// certificates, forever, even after revocation.
	ContentHash string
	Issuer      id.Principal
	Status      Status
	CreatedAt   time.Time
}
