package store

import "context"

// SendFunc feeds an action produced by an effect back into its store.
type SendFunc[A any] func(action A)

type operation[A any] struct {
	// id groups cancellable work; a new operation with the same id
	// cancels the one still in flight.
	id     string
	cancel bool
	run    func(ctx context.Context, send SendFunc[A])
}

// Effect describes work a reducer wants performed after a transition.
// The zero value performs nothing.
type Effect[A any] struct {
	ops []operation[A]
}

// None returns an effect that does nothing.
func None[A any]() Effect[A] {
	return Effect[A]{}
}

// Run wraps an asynchronous unit of work. fn runs on its own goroutine and
// reports results through send.
func Run[A any](fn func(ctx context.Context, send SendFunc[A])) Effect[A] {
	return Effect[A]{ops: []operation[A]{{run: fn}}}
}

// Send returns an effect that dispatches action back into the store.
func Send[A any](action A) Effect[A] {
	return Run(func(_ context.Context, send SendFunc[A]) {
		send(action)
	})
}

// Cancel stops any in-flight effect registered under id.
func Cancel[A any](id string) Effect[A] {
	return Effect[A]{ops: []operation[A]{{id: id, cancel: true}}}
}

// Batch merges several effects into one; all of them run concurrently.
func Batch[A any](effects ...Effect[A]) Effect[A] {
	var ops []operation[A]
	for _, e := range effects {
		ops = append(ops, e.ops...)
	}
	return Effect[A]{ops: ops}
}

// Cancellable marks every operation of e with id, so that starting another
// effect with the same id cancels all of them first. Operations batched
// into e do not cancel each other.
func (e Effect[A]) Cancellable(id string) Effect[A] {
	ops := make([]operation[A], len(e.ops))
	for i, op := range e.ops {
		if !op.cancel {
			op.id = id
		}
		ops[i] = op
	}
	return Effect[A]{ops: ops}
}

// IsNone reports whether the effect performs no work.
func (e Effect[A]) IsNone() bool {
	return len(e.ops) == 0
}

// Map lifts a child effect into a parent's action type.
func Map[A, B any](e Effect[A], f func(A) B) Effect[B] {
	if len(e.ops) == 0 {
		return Effect[B]{}
	}
	ops := make([]operation[B], len(e.ops))
	for i, op := range e.ops {
		mapped := operation[B]{id: op.id, cancel: op.cancel}
		if op.run != nil {
			run := op.run
			mapped.run = func(ctx context.Context, send SendFunc[B]) {
				run(ctx, func(a A) { send(f(a)) })
			}
		}
		ops[i] = mapped
	}
	return Effect[B]{ops: ops}
}
