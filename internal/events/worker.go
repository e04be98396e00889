package events

import (
	"context"
	"log/slog"
)

// Sink receives committed events for mirroring into external systems
// (relational cache, message broker). Sinks are derived projections and are
// never consulted for state.
type Sink interface {
	Name() string
	Write(ctx context.Context, event Event) error
}

// Worker consumes committed events from a subscription channel and fans them
// out to mirror sinks. Sink failures are logged and counted, never propagated:
// mirrors are best-effort and can replay from the trail.
type Worker struct {
	inbox     <-chan Event
	sinks     []Sink
	logger    *slog.Logger
	onFailure func(sink string)
}

// NewWorker builds a mirror worker. onFailure may be nil.
func NewWorker(inbox <-chan Event, sinks []Sink, logger *slog.Logger, onFailure func(sink string)) *Worker {
	return &Worker{inbox: inbox, sinks: sinks, logger: logger, onFailure: onFailure}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			for _, sink := range w.sinks {
				if err := sink.Write(ctx, event); err != nil {
					if w.onFailure != nil {
						w.onFailure(sink.Name())
					}
					w.logger.ErrorContext(ctx, "event mirror write failed",
						"sink", sink.Name(),
						"seq", event.Seq,
						"error", err,
					)
				}
			}
		}
	}
}
