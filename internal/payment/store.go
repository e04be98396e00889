package payment

import (
	"context"

	id "orgnet/pkg/domain"
)

// Store owns canonical payment state. MarkPaid validates the transition at
// commit time; a paid payment cannot be paid again.
type Store interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	Get(ctx context.Context, paymentID uint64) (Payment, error)
	// ListByRecipient returns payments destined for the principal, in
	// creation order.
	ListByRecipient(ctx context.Context, recipient id.Principal) ([]Payment, error)
	MarkPaid(ctx context.Context, paymentID uint64) (Payment, error)
	Count(ctx context.Context) (int, error)
}
