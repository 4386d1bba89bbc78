package engine

import "sync/atomic"

// DefaultEventBuffer is the subscription buffer used when a caller passes a non-positive size.
const DefaultEventBuffer = 64

// Subscription receives engine events in the order they were produced.
// Delivery never blocks the engine: when the buffer is full the oldest event is dropped.
type Subscription struct {
	id      uint64
	events  chan Event
	done    chan struct{}
	closed  bool
	dropped atomic.Uint64
}

func newSubscription(id uint64, buffer int) *Subscription {
	if buffer < 1 {
		buffer = DefaultEventBuffer
	}
	return &Subscription{
		id:     id,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// Events returns the channel to receive events from.
// It is closed when the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Done returns a channel that closes when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Dropped returns how many events were discarded because the buffer was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// deliver queues evt. Called with the engine lock held.
func (s *Subscription) deliver(evt Event) {
	if s.closed {
		return
	}

	select {
	case s.events <- evt:
		return
	default:
	}

	// Buffer full, drop oldest and retry
	select {
	case <-s.events:
		s.dropped.Add(1)
	default:
	}
	select {
	case s.events <- evt:
	default:
		s.dropped.Add(1)
	}
}

// close ends the subscription. Called with the engine lock held; safe to repeat.
func (s *Subscription) close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	close(s.events)
}
