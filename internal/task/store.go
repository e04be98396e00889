package task

import (
	"context"

	id "orgnet/pkg/domain"
)

// Store owns canonical task state. Create commits atomically; a rejected
// create never consumes an id. UpdateStatus validates the target status at
// commit time.
type Store interface {
	Create(ctx context.Context, t Task) (Task, error)
	Get(ctx context.Context, taskID uint64) (Task, error)
	// ListByPrincipal returns tasks where p is assigner or assignee, in
	// creation order.
	ListByPrincipal(ctx context.Context, p id.Principal) ([]Task, error)
	UpdateStatus(ctx context.Context, taskID uint64, next Status) (Task, error)
	Count(ctx context.Context) (int, error)
}
