package notice

import (
	"context"
)

// Store owns canonical notice state. Notices are append-only; nothing
// mutates a record once written.
type Store interface {
	Create(ctx context.Context, n Notice) (Notice, error)
	Get(ctx context.Context, noticeID uint64) (Notice, error)
	// ListByCategory returns notices for one audience in posting order.
	ListByCategory(ctx context.Context, category Category) ([]Notice, error)
	Count(ctx context.Context) (int, error)
}
