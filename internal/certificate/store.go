package certificate

import (
	"context"

	id "orgnet/pkg/domain"
)

// Store owns canonical certificate state. Create is the single atomic commit
// point: natural-key reservation, id allocation, record write, and issuer
// index append happen all-or-nothing, and a rejected create never consumes an
// id. UpdateStatus enforces the transition table at commit time.
type Store interface {
	Create(ctx context.Context, cert Certificate) (Certificate, error)
	Get(ctx context.Context, certID uint64) (Certificate, error)
	GetByHash(ctx context.Context, contentHash string) (Certificate, error)
	ListByIssuer(ctx context.Context, issuer id.Principal) ([]Certificate, error)
	UpdateStatus(ctx context.Context, certID uint64, next Status) (Certificate, error)
	Count(ctx context.Context) (int, error)
}
