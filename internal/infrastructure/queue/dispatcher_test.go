package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/talenthub/talenthub-api/internal/core/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type published struct {
	key     string
	payload any
}

type recordingSink struct {
	mu      sync.Mutex
	events  []published
	block   chan struct{}
	failKey string
	closed  bool
}

func (s *recordingSink) Publish(_ context.Context, key string, payload any) error {
	if s.block != nil {
		<-s.block
	}
	if key == s.failKey {
		return errors.New("broker down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, published{key, payload})
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSink) snapshot() []published {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]published(nil), s.events...)
}

func TestDispatcher_DeliversAllEventsOnClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(4, sink, zerolog.Nop())
	d.Start()

	for i := 0; i < 50; i++ {
		require.NoError(t, d.Publish(context.Background(), ports.EventJobApplied, ports.JobAppliedEvent{JobID: "job-1"}))
	}
	require.NoError(t, d.Close())

	assert.Len(t, sink.snapshot(), 50)
	assert.True(t, sink.closed)
}

func TestDispatcher_PreservesOrderPerPartition(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(8, sink, zerolog.Nop())
	d.Start()

	applicants := []string{"a", "b", "c", "d", "e", "f"}
	for _, a := range applicants {
		require.NoError(t, d.Publish(context.Background(), ports.EventJobApplied, ports.JobAppliedEvent{JobID: "job-7", ApplicantID: a}))
	}
	require.NoError(t, d.Close())

	var got []string
	for _, ev := range sink.snapshot() {
		got = append(got, ev.payload.(ports.JobAppliedEvent).ApplicantID)
	}
	assert.Equal(t, applicants, got)
}

func TestDispatcher_SinkErrorsDoNotStopWorkers(t *testing.T) {
	sink := &recordingSink{failKey: ports.EventJobCreated}
	d := NewDispatcher(1, sink, zerolog.Nop())
	d.Start()

	require.NoError(t, d.Publish(context.Background(), ports.EventJobCreated, ports.JobCreatedEvent{JobID: "j"}))
	require.NoError(t, d.Publish(context.Background(), ports.EventMessageSent, ports.MessageSentEvent{ReceiverID: "u"}))
	require.NoError(t, d.Close())

	events := sink.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, ports.EventMessageSent, events[0].key)
}

func TestDispatcher_FullQueueRejects(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(1, sink, zerolog.Nop())
	d.Start()

	var full error
	// One event is held by the blocked worker, the rest fill the buffer.
	for i := 0; i <= channelBuffer+1; i++ {
		if err := d.Publish(context.Background(), "k", i); err != nil {
			full = err
			break
		}
	}
	assert.ErrorIs(t, full, ErrQueueFull)

	close(sink.block)
	require.NoError(t, d.Close())
}

func TestDispatcher_PublishAfterClose(t *testing.T) {
	d := NewDispatcher(2, &recordingSink{}, zerolog.Nop())
	d.Start()
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	assert.ErrorIs(t, d.Publish(context.Background(), "k", nil), ErrClosed)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(16, &recordingSink{}, zerolog.Nop())

	first := d.shardIndex(ports.EventJobCreated, ports.JobCreatedEvent{JobID: "job-1"})
	second := d.shardIndex(ports.EventJobApplied, ports.JobAppliedEvent{JobID: "job-1"})
	assert.Equal(t, first, second)
}
