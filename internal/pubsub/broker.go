package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Overflow decides what a full subscriber buffer gives up.
type Overflow int

const (
	// DropNewest discards the event being published. Suits streams where
	// every entry is independent, such as log lines.
	DropNewest Overflow = iota
	// DropOldest evicts the oldest queued event to make room. Suits
	// snapshots, where only the latest one matters.
	DropOldest
)

// Option configures a Broker.
type Option func(*options)

type options struct {
	buffer   int
	overflow Overflow
}

// WithBuffer sets how many events each subscriber can queue.
func WithBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// WithOverflow sets the full-buffer policy.
func WithOverflow(p Overflow) Option {
	return func(o *options) { o.overflow = p }
}

// Broker fans events out to every subscriber. Publishing never blocks.
type Broker[T any] struct {
	mu      sync.RWMutex
	subs    map[chan Event[T]]struct{}
	done    chan struct{}
	opts    options
	dropped atomic.Uint64
}

// NewBroker returns a broker with 64-event buffers that drop the newest
// event on overflow unless opts say otherwise.
func NewBroker[T any](opts ...Option) *Broker[T] {
	o := options{buffer: 64, overflow: DropNewest}
	for _, opt := range opts {
		opt(&o)
	}
	return &Broker[T]{
		subs: make(map[chan Event[T]]struct{}),
		done: make(chan struct{}),
		opts: o,
	}
}

// Subscribe returns a channel of future events. It is closed when ctx is
// cancelled or the broker is closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan Event[T], b.opts.buffer)
	if b.isClosed() {
		close(sub)
		return sub
	}
	b.subs[sub] = struct{}{}

	go b.unsubscribeOnDone(ctx, sub)
	return sub
}

func (b *Broker[T]) unsubscribeOnDone(ctx context.Context, sub chan Event[T]) {
	select {
	case <-ctx.Done():
	case <-b.done:
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub)
	}
}

// Publish stamps payload and offers it to every subscriber.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.isClosed() {
		return
	}

	event := Event[T]{Type: eventType, Payload: payload, Timestamp: time.Now()}
	for sub := range b.subs {
		if !b.offer(sub, event) {
			b.dropped.Add(1)
		}
	}
}

// offer queues event on sub and reports false when something was lost.
func (b *Broker[T]) offer(sub chan Event[T], event Event[T]) bool {
	select {
	case sub <- event:
		return true
	default:
	}
	if b.opts.overflow == DropNewest {
		return false
	}

	select {
	case <-sub:
	default:
	}
	select {
	case sub <- event:
	default:
		// A concurrent publisher refilled the slot; the event is lost.
	}
	return false
}

// Close closes every subscriber channel. Later calls do nothing.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.isClosed() {
		return
	}
	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	clear(b.subs)
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped counts events lost to full buffers, whichever end they left from.
func (b *Broker[T]) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Broker[T]) isClosed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}
