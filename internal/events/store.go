package events

import "context"

// Store is the ordered, append-only event trail. Append assigns the commit
// sequence; entries are never revised or deleted.
type Store interface {
	Append(ctx context.Context, event Event) (Event, error)
	// List returns up to limit events with Seq > after, in commit order.
	// limit <= 0 means no limit.
	List(ctx context.Context, after uint64, limit int) ([]Event, error)
	Len(ctx context.Context) (int, error)
}
