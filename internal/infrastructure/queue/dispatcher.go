// Package queue moves domain event publishing off the request path.
package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	publishTimeout = 5 * time.Second
)

var (
	ErrQueueFull = errors.New("event queue full")
	ErrClosed    = errors.New("event queue closed")
)

// Partitioned payloads choose the worker that publishes them. Events sharing
// a key are published in enqueue order.
type Partitioned interface {
	PartitionKey() string
}

// Sink is the downstream publisher the workers hand events to.
type Sink interface {
	ports.EventPublisher
	Close() error
}

type envelope struct {
	routingKey string
	payload    any
}

// Dispatcher routes domain events to a fixed set of workers using consistent
// hashing on the partition key, guaranteeing per-entity ordering.
type Dispatcher struct {
	mu      sync.RWMutex
	closed  bool
	workers []chan envelope
	wg      sync.WaitGroup
	sink    Sink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan envelope, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan envelope, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. They run until Close.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Publish enqueues the event without blocking. The context is not used past
// this call because the event outlives the request that raised it.
func (d *Dispatcher) Publish(_ context.Context, routingKey string, payload any) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	select {
	case d.workers[d.shardIndex(routingKey, payload)] <- envelope{routingKey: routingKey, payload: payload}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events, drains the queues and closes the sink.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
	return d.sink.Close()
}

// shardIndex maps an event deterministically to a worker index.
func (d *Dispatcher) shardIndex(routingKey string, payload any) int {
	key := routingKey
	if p, ok := payload.(Partitioned); ok {
		key = p.PartitionKey()
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan envelope) {
	defer d.wg.Done()
	for ev := range ch {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := d.sink.Publish(ctx, ev.routingKey, ev.payload); err != nil {
			d.log.Error().Err(err).
				Str("routing_key", ev.routingKey).
				Int("worker_id", id).
				Msg("event publishing failed")
		}
		cancel()
	}
}
