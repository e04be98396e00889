package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"orgnet/pkg/requestcontext"
)

// Publisher appends events with fail-closed semantics: the caller blocks until
// the trail write succeeds, and if it fails the calling mutation MUST fail.
// After a successful append the event is fanned out to subscribers (mirror
// workers) on a best-effort basis.
type Publisher struct {
	store  Store
	logger *slog.Logger

	mu   sync.RWMutex
	subs []chan Event

	onDrop func()
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for drop reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithDropCounter registers a callback invoked when a subscriber buffer is
// full and an event is dropped from that subscription (the trail itself is
// unaffected).
func WithDropCounter(fn func()) Option {
	return func(p *Publisher) {
		p.onDrop = fn
	}
}

// NewPublisher creates a publisher over the given trail store.
func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit appends one event to the trail. Timestamp defaults to the
// request-scoped clock. Returns the stored event with its commit sequence.
func (p *Publisher) Emit(ctx context.Context, event Event) (Event, error) {
	if event.Registry == "" || event.Action == "" {
		return Event{}, fmt.Errorf("event requires registry and action")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}

	stored, err := p.store.Append(ctx, event)
	if err != nil {
		return Event{}, fmt.Errorf("event trail append failed: %w", err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, sub := range p.subs {
		select {
		case sub <- stored:
		default:
			if p.onDrop != nil {
				p.onDrop()
			}
			if p.logger != nil {
				p.logger.WarnContext(ctx, "event subscriber buffer full, dropping",
					"seq", stored.Seq,
					"action", stored.Action,
				)
			}
		}
	}
	return stored, nil
}

// Subscribe returns a channel fed with every event emitted after the call.
// Slow consumers miss events rather than blocking mutations; they can catch
// up via List.
func (p *Publisher) Subscribe(buffer int) <-chan Event {
	ch := make(chan Event, buffer)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, ch)
	return ch
}

// List exposes the trail for pull-based consumers.
func (p *Publisher) List(ctx context.Context, after uint64, limit int) ([]Event, error) {
	return p.store.List(ctx, after, limit)
}
