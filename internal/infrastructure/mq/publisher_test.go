package mq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub/talenthub-api/internal/core/ports"
)

var (
	_ ports.EventPublisher = (*Publisher)(nil)
	_ ports.EventPublisher = Noop{}
)

func TestPublisher_RejectsUnencodablePayload(t *testing.T) {
	p := &Publisher{exchange: DefaultExchange}
	err := p.Publish(context.Background(), ports.EventJobCreated, map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode job.created event")
}

func TestPublisher_ClosedChannel(t *testing.T) {
	p := &Publisher{exchange: DefaultExchange}
	err := p.Publish(context.Background(), ports.EventJobApplied, ports.JobAppliedEvent{JobID: "j1"})
	assert.ErrorContains(t, err, "channel closed")
	assert.NoError(t, p.Close())
}

func TestNoop(t *testing.T) {
	var n Noop
	assert.NoError(t, n.Publish(context.Background(), ports.EventMessageSent, nil))
	assert.NoError(t, n.Close())
}
