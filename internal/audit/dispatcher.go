package audit

import (
	"context"
	"sync"
	"sync/atomic"
)

// Config controls dispatcher buffering behavior.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Dispatcher decouples the session lifecycle from sink latency: Emit hands the
// event to a single forwarding goroutine and returns. With DropIfFull set, a
// slow sink costs events (counted by Dropped) instead of stalling the
// login/refresh path that produced them.
type Dispatcher struct {
	sink     Sink
	dropFull bool

	mu     sync.RWMutex
	queue  chan Event
	closed bool

	finished chan struct{}
	lost     atomic.Uint64
}

// NewDispatcher starts the forwarding goroutine. A disabled config yields a
// nil dispatcher; every method treats the nil receiver as a no-op.
func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	buffer := cfg.BufferSize
	if buffer <= 0 {
		buffer = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &Dispatcher{
		sink:     sink,
		dropFull: cfg.DropIfFull,
		queue:    make(chan Event, buffer),
		finished: make(chan struct{}),
	}
	go d.forward()

	return d
}

// forward delivers queued events until Close closes the queue; ranging over
// the channel drains whatever is still buffered before signalling completion.
func (d *Dispatcher) forward() {
	for event := range d.queue {
		d.sink.Emit(context.Background(), event)
	}
	close(d.finished)
}

// Emit enqueues an event. After Close, or on a nil dispatcher, it does
// nothing. In blocking mode the caller's context bounds the wait.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// The read lock excludes Close, so the queue cannot be closed mid-send.
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	if d.dropFull {
		select {
		case d.queue <- event:
		default:
			d.lost.Add(1)
		}
		return
	}

	select {
	case d.queue <- event:
	case <-ctx.Done():
	}
}

// Close stops intake, waits for buffered events to reach the sink, and
// returns. Closing twice is safe.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.finished
}

// Dropped reports events discarded under DropIfFull backpressure.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.lost.Load()
}
