package payment

import (
	"context"
	"sync"

	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
)

// Treasury moves value between principals. Implementations must either
// complete the transfer or leave both balances untouched.
type Treasury interface {
	// Transfer moves amount from the payer to the recipient, drawing on the
	// value the payer attached to the request. It fails with
	// InsufficientFunds when attached < amount.
	Transfer(ctx context.Context, from, to id.Principal, amount, attached uint64) error
}

// InMemoryTreasury credits recipients in process. The attached value is the
// spending limit for one transfer; anything above the amount is returned to
// the payer as change, so only the amount itself lands in balances.
type InMemoryTreasury struct {
	mu       sync.Mutex
	balances map[id.Principal]uint64
}

func NewInMemoryTreasury() *InMemoryTreasury {
	return &InMemoryTreasury{balances: make(map[id.Principal]uint64)}
}

func (t *InMemoryTreasury) Transfer(_ context.Context, _, to id.Principal, amount, attached uint64) error {
	if attached < amount {
		return dErrors.Newf(dErrors.CodeInsufficientFunds,
			"attached value %d is less than the payment amount %d", attached, amount)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[to] += amount
	return nil
}

// Balance reports how much has been credited to the principal.
func (t *InMemoryTreasury) Balance(p id.Principal) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[p]
}
