// Package reactor serializes editor events and evaluator calls through a
// single consumer goroutine: the evaluator's environments are immutable
// and safe to share, but the host-side bookkeeping an LSP session layers
// on top of them (the hover index, diagnostics, the document cache) is
// not, so every mutation goes through one goroutine instead of being
// guarded by a mutex per field.
package reactor

import "fmt"

// Action is a unit of work the Reactor runs on its consumer goroutine.
// It closes over whatever state it needs directly rather than threading
// a shared handle through, since there is no single mutable object all
// Actions need access to (spec.md §4.6).
type Action func()

type request struct {
	fn   Action
	done chan error
}

// Reactor runs submitted Actions one at a time, in the order they were
// submitted, on a dedicated goroutine.
type Reactor struct {
	requests chan request
	quit     chan struct{}
}

// New creates a Reactor and starts its consumer goroutine. queueDepth
// bounds how many pending Submits may be buffered before Submit blocks;
// Do always blocks regardless of depth since it waits for its own result.
func New(queueDepth int) *Reactor {
	r := &Reactor{
		requests: make(chan request, queueDepth),
		quit:     make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *Reactor) loop() {
	for {
		select {
		case req := <-r.requests:
			err := r.execute(req.fn)
			if req.done != nil {
				req.done <- err
			}
		case <-r.quit:
			return
		}
	}
}

// execute runs fn, recovering from any panic and turning it into an
// error so a single bad Action can't kill the consumer goroutine.
func (r *Reactor) execute(fn Action) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("reactor: recovered panic: %v", rec)
		}
	}()
	fn()
	return nil
}

// Do submits fn and blocks until it has run, returning any error
// (including a recovered panic).
func (r *Reactor) Do(fn Action) error {
	req := request{fn: fn, done: make(chan error, 1)}
	r.requests <- req
	return <-req.done
}

// Submit enqueues fn without waiting for it to run, preserving its
// position in FIFO order relative to other Submit/Do calls. Use for
// fire-and-forget notifications (didOpen/didChange) where the caller has
// no result to observe.
func (r *Reactor) Submit(fn Action) {
	r.requests <- request{fn: fn}
}

// Stop shuts down the consumer goroutine. Actions already queued but not
// yet run are dropped.
func (r *Reactor) Stop() {
	close(r.quit)
}
