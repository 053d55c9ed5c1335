package itunes

import (
	"context"
	"sync"
)

// Dispatcher runs a completion on the execution context a caller needs,
// e.g. the goroutine that owns UI state.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface
type DispatcherFunc func(fn func())

// Dispatch calls f(fn)
func (f DispatcherFunc) Dispatch(fn func()) {
	f(fn)
}

// Immediate runs completions on the goroutine that finished the request
var Immediate Dispatcher = DispatcherFunc(func(fn func()) { fn() })

// MainQueue serializes completions onto the single goroutine running Run.
// It plays the role of a UI main thread for callers that need one.
type MainQueue struct {
	mu      sync.Mutex
	pending []func()
	closed  bool

	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMainQueue creates an idle queue; call Run to start draining it
func NewMainQueue() *MainQueue {
	return &MainQueue{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
}

// Dispatch enqueues fn. Once the queue has shut down, fn runs inline so a
// completion is never lost.
func (q *MainQueue) Dispatch(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		fn()
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Run executes queued functions in FIFO order until ctx is done or Stop is
// called. Anything queued before shutdown is still executed.
func (q *MainQueue) Run(ctx context.Context) {
	for {
		q.drain()

		select {
		case <-q.wake:
		case <-ctx.Done():
			q.shutdown()
			return
		case <-q.stop:
			q.shutdown()
			return
		}
	}
}

// Stop ends Run
func (q *MainQueue) Stop() {
	q.stopOnce.Do(func() {
		close(q.stop)
	})
}

func (q *MainQueue) shutdown() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.drain()
}

func (q *MainQueue) drain() {
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}
