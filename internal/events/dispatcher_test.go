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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingSink collects delivered events.
type recordingSink struct {
	mu     sync.Mutex
	events []ChangeEvent
	err    error
	block  chan struct{}
}

func (s *recordingSink) Deliver(ctx context.Context, event ChangeEvent) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) identities() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Identity)
	}
	return out
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "task-updated-a@example.com", EventName("a@example.com"))
	assert.Equal(t, "task-updated-b@example.com", ChangeEvent{Identity: "b@example.com"}.Name())
}

func TestNewDispatcherPanicsWithoutLogger(t *testing.T) {
	assert.Panics(t, func() { NewDispatcher(1, nil) })
}

func TestDispatcherDeliversToAllSinks(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{err: errors.New("sink down")}
	d := NewDispatcher(8, discardLogger(), first, second)
	d.Start()

	d.NotifyChanged(context.Background(), "a@example.com")
	d.NotifyChanged(context.Background(), "b@example.com")

	require.NoError(t, d.Stop(context.Background()))
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, first.identities())
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, second.identities())
}

func TestDispatcherIgnoresEmptyIdentity(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(4, discardLogger(), sink)
	d.Start()

	d.NotifyChanged(context.Background(), "")

	require.NoError(t, d.Stop(context.Background()))
	assert.Empty(t, sink.identities())
}

func TestDispatcherNeverBlocksWithoutConsumer(t *testing.T) {
	d := NewDispatcher(2, discardLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			d.NotifyChanged(context.Background(), "a@example.com")
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyChanged blocked with a full queue")
	}
	assert.Equal(t, 2, d.Pending())
}

func TestDispatcherDropsWhenSinkIsSlow(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(1, discardLogger(), sink)
	d.Start()

	for i := 0; i < 10; i++ {
		d.NotifyChanged(context.Background(), "a@example.com")
	}
	close(sink.block)

	require.NoError(t, d.Stop(context.Background()))
	delivered := len(sink.identities())
	assert.GreaterOrEqual(t, delivered, 1)
	assert.LessOrEqual(t, delivered, 2)
}

func TestDispatcherStop(t *testing.T) {
	t.Run("without start", func(t *testing.T) {
		d := NewDispatcher(1, discardLogger())
		assert.NoError(t, d.Stop(context.Background()))
	})

	t.Run("twice", func(t *testing.T) {
		d := NewDispatcher(1, discardLogger())
		d.Start()
		assert.NoError(t, d.Stop(context.Background()))
		assert.NoError(t, d.Stop(context.Background()))
	})

	t.Run("signals after stop are dropped", func(t *testing.T) {
		sink := &recordingSink{}
		d := NewDispatcher(4, discardLogger(), sink)
		d.Start()
		require.NoError(t, d.Stop(context.Background()))

		d.NotifyChanged(context.Background(), "a@example.com")
		assert.Equal(t, 0, d.Pending())
		assert.Empty(t, sink.identities())
	})

	t.Run("context deadline while sink blocks", func(t *testing.T) {
		sink := &recordingSink{block: make(chan struct{})}
		defer close(sink.block)
		d := NewDispatcher(4, discardLogger(), sink)
		d.Start()
		d.NotifyChanged(context.Background(), "a@example.com")

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, d.Stop(ctx), context.DeadlineExceeded)
	})
}

func TestSinkFunc(t *testing.T) {
	var got ChangeEvent
	sink := SinkFunc(func(ctx context.Context, event ChangeEvent) error {
		got = event
		return nil
	})

	require.NoError(t, sink.Deliver(context.Background(), ChangeEvent{Identity: "a@example.com"}))
	assert.Equal(t, "a@example.com", got.Identity)
}
