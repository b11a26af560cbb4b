// Package store implements a small unidirectional state container.
//
// A Store owns a state value and a Reducer. Every action sent to the store is
// reduced serially; the reducer mutates the state in place and returns an
// Effect describing asynchronous work. Effects run on their own goroutines and
// report results by sending further actions into the same store. Effects never
// touch the state directly.
//
// # Usage
//
//	s := store.New(booklist.State{}, booklist.NewReducer(repo))
//	s.Send(booklist.Appear{})
//	_ = s.Wait(ctx)
//	state := s.State()
//
// State returns a shallow copy. Reducers replace slices, maps and pointers
// held in state instead of writing through them, so snapshots stay stable.
package store

import (
	"context"
	"log"
	"slices"
	"sync"
)

// Reducer computes the next state for an action and the effect to run.
type Reducer[S, A any] interface {
	Reduce(state *S, action A) Effect[A]
}

// ReducerFunc adapts a plain function to the Reducer interface.
type ReducerFunc[S, A any] func(state *S, action A) Effect[A]

// Reduce calls f(state, action).
func (f ReducerFunc[S, A]) Reduce(state *S, action A) Effect[A] {
	return f(state, action)
}

// Option configures a Store.
type Option func(*options)

type options struct {
	name       string
	logChanges bool
}

// WithChangeLogging logs every received action and the resulting state.
func WithChangeLogging(name string) Option {
	return func(o *options) {
		o.name = name
		o.logChanges = true
	}
}

type task struct {
	cancel context.CancelFunc
}

// Store runs a reducer against a state value.
type Store[S, A any] struct {
	reducer Reducer[S, A]
	opts    options

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    S
	closed   bool
	running  map[string][]*task
	inFlight int
	idle     chan struct{}
}

// New creates a store seeded with initial.
func New[S, A any](initial S, reducer Reducer[S, A], opts ...Option) *Store[S, A] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Store[S, A]{
		reducer: reducer,
		opts:    o,
		ctx:     ctx,
		cancel:  cancel,
		state:   initial,
		running: make(map[string][]*task),
	}
}

// Send dispatches an action. The reducer runs before Send returns; any
// resulting effects are started in the background.
func (s *Store[S, A]) Send(action A) {
	s.dispatch(nil, action)
}

// State returns a snapshot of the current state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Wait blocks until no effect is in flight or ctx is done.
func (s *Store[S, A]) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.inFlight == 0 {
			s.mu.Unlock()
			return nil
		}
		idle := s.idle
		s.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels all running effects. Actions sent afterwards are ignored.
func (s *Store[S, A]) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

func (s *Store[S, A]) dispatch(origin context.Context, action A) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	// Cancellation happens under the same lock, so a cancelled effect can
	// never slip an action in after its replacement started.
	if origin != nil && origin.Err() != nil {
		return
	}

	effect := s.reducer.Reduce(&s.state, action)
	if s.opts.logChanges {
		log.Printf("[%s] received %T: %+v", s.opts.name, action, action)
		log.Printf("[%s] state: %+v", s.opts.name, s.state)
	}
	s.start(effect)
}

// start launches the operations of effect. Callers hold s.mu. Operations
// of one effect that share an id run side by side; they only cancel work
// started by earlier effects.
func (s *Store[S, A]) start(effect Effect[A]) {
	replaced := make(map[string]bool)
	for _, op := range effect.ops {
		if op.cancel {
			s.cancelAll(op.id)
			continue
		}
		if op.run == nil {
			continue
		}

		ctx, cancel := context.WithCancel(s.ctx)
		t := &task{cancel: cancel}
		if op.id != "" {
			if !replaced[op.id] {
				s.cancelAll(op.id)
				replaced[op.id] = true
			}
			s.running[op.id] = append(s.running[op.id], t)
		}

		if s.inFlight == 0 {
			s.idle = make(chan struct{})
		}
		s.inFlight++

		go func(op operation[A]) {
			defer s.finish(op.id, t)
			op.run(ctx, func(a A) { s.dispatch(ctx, a) })
		}(op)
	}
}

func (s *Store[S, A]) cancelAll(id string) {
	for _, t := range s.running[id] {
		t.cancel()
	}
	delete(s.running, id)
}

func (s *Store[S, A]) finish(id string, t *task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.cancel()
	if id != "" {
		tasks := slices.DeleteFunc(s.running[id], func(other *task) bool { return other == t })
		if len(tasks) == 0 {
			delete(s.running, id)
		} else {
			s.running[id] = tasks
		}
	}
	s.inFlight--
	if s.inFlight == 0 {
		close(s.idle)
	}
}
