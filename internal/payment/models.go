package payment

import (
	"time"

	id "orgnet/pkg/domain"
)

// Registry is the name this registry reports in events and metrics.
const Registry = "payment"

// Status is the payment lifecycle state.
type Status string

const (
	StatusUnpaid Status = "unpaid"
	StatusPaid   Status = "paid"
)

// CanTransitionTo reports whether the status change is permitted. Paying is
// one-way and terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusUnpaid && next == StatusPaid
}

// Payment is one salary payment record. Amount is in the treasury's smallest
// unit. Only Status mutates after creation.
type Payment struct {
	ID           uint64
	EmployeeName string
	// Employee is the recipient principal the treasury pays out to.
	Employee    id.Principal
	Description string
	Amount      uint64
	Status      Status
	// CreatedBy is the approver who filed the payment.
	CreatedBy id.Principal
	CreatedAt time.Time
}
