package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	name   string
	events []Event
	fail   bool
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Write(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("sink down")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) seen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestWorkerFansOutToSinks(t *testing.T) {
	inbox := make(chan Event, 4)
	healthy := &recordingSink{name: "postgres"}
	broken := &recordingSink{name: "kafka", fail: true}

	failures := make(chan string, 4)
	worker := NewWorker(inbox, []Sink{healthy, broken}, slog.New(slog.NewTextHandler(io.Discard, nil)), func(sink string) {
		failures <- sink
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{Seq: 1, Registry: "leave", Action: ActionLeaveRequested, RecordID: 1}

	select {
	case sink := <-failures:
		assert.Equal(t, "kafka", sink)
	case <-time.After(time.Second):
		t.Fatal("expected a failure callback for the broken sink")
	}

	require.Eventually(t, func() bool { return healthy.seen() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
