package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterState struct {
	Count   int
	Results []string
}

type counterAction interface{ isCounterAction() }

type increment struct{}
type load struct {
	Value string
	Delay time.Duration
}
type loaded struct{ Value string }
type cancelLoad struct{}
type loadPair struct {
	First, Second string
	Delay         time.Duration
}

func (increment) isCounterAction()  {}
func (load) isCounterAction()       {}
func (loaded) isCounterAction()     {}
func (cancelLoad) isCounterAction() {}
func (loadPair) isCounterAction()   {}

func counterReducer(state *counterState, action counterAction) Effect[counterAction] {
	switch a := action.(type) {
	case increment:
		state.Count++
		return None[counterAction]()
	case load:
		return Run(func(ctx context.Context, send SendFunc[counterAction]) {
			select {
			case <-time.After(a.Delay):
			case <-ctx.Done():
				return
			}
			send(loaded{Value: a.Value})
		}).Cancellable("load")
	case loaded:
		state.Results = append(append([]string(nil), state.Results...), a.Value)
		return None[counterAction]()
	case cancelLoad:
		return Cancel[counterAction]("load")
	case loadPair:
		after := func(value string) Effect[counterAction] {
			return Run(func(ctx context.Context, send SendFunc[counterAction]) {
				select {
				case <-time.After(a.Delay):
				case <-ctx.Done():
					return
				}
				send(loaded{Value: value})
			})
		}
		return Batch(after(a.First), after(a.Second)).Cancellable("load")
	}
	return None[counterAction]()
}

func newCounterStore() *Store[counterState, counterAction] {
	return New(counterState{}, ReducerFunc[counterState, counterAction](counterReducer))
}

func waitIdle(t *testing.T, s *Store[counterState, counterAction]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
}

func TestStore_Send(t *testing.T) {
	t.Run("reduces synchronously", func(t *testing.T) {
		s := newCounterStore()
		defer s.Close()

		s.Send(increment{})
		s.Send(increment{})

		assert.Equal(t, 2, s.State().Count)
	})

	t.Run("feeds effect results back into the store", func(t *testing.T) {
		s := newCounterStore()
		defer s.Close()

		s.Send(load{Value: "a"})
		waitIdle(t, s)

		assert.Equal(t, []string{"a"}, s.State().Results)
	})

	t.Run("newer cancellable effect replaces the older one", func(t *testing.T) {
		s := newCounterStore()
		defer s.Close()

		s.Send(load{Value: "slow", Delay: 200 * time.Millisecond})
		s.Send(load{Value: "fast"})
		waitIdle(t, s)

		assert.Equal(t, []string{"fast"}, s.State().Results)
	})

	t.Run("cancel stops in-flight effect", func(t *testing.T) {
		s := newCounterStore()
		defer s.Close()

		s.Send(load{Value: "never", Delay: time.Second})
		s.Send(cancelLoad{})
		waitIdle(t, s)

		assert.Empty(t, s.State().Results)
	})

	t.Run("batched operations sharing an id all run", func(t *testing.T) {
		s := newCounterStore()
		defer s.Close()

		s.Send(loadPair{First: "a", Second: "b", Delay: 20 * time.Millisecond})
		waitIdle(t, s)

		assert.ElementsMatch(t, []string{"a", "b"}, s.State().Results)
	})

	t.Run("cancel stops every batched operation", func(t *testing.T) {
		s := newCounterStore()
		defer s.Close()

		s.Send(loadPair{First: "a", Second: "b", Delay: time.Second})
		s.Send(cancelLoad{})
		waitIdle(t, s)

		assert.Empty(t, s.State().Results)
	})

	t.Run("newer effect replaces a whole batch", func(t *testing.T) {
		s := newCounterStore()
		defer s.Close()

		s.Send(loadPair{First: "a", Second: "b", Delay: time.Second})
		s.Send(load{Value: "c"})
		waitIdle(t, s)

		assert.Equal(t, []string{"c"}, s.State().Results)
	})

	t.Run("ignores actions after close", func(t *testing.T) {
		s := newCounterStore()
		s.Close()

		s.Send(increment{})

		assert.Equal(t, 0, s.State().Count)
	})
}

func TestStore_Wait(t *testing.T) {
	t.Run("returns immediately when idle", func(t *testing.T) {
		s := newCounterStore()
		defer s.Close()

		assert.NoError(t, s.Wait(context.Background()))
	})

	t.Run("honours context deadline", func(t *testing.T) {
		s := newCounterStore()
		defer s.Close()

		s.Send(load{Value: "late", Delay: time.Second})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, s.Wait(ctx), context.DeadlineExceeded)
	})
}

func TestEffect(t *testing.T) {
	t.Run("zero value is none", func(t *testing.T) {
		var e Effect[int]
		assert.True(t, e.IsNone())
		assert.True(t, None[int]().IsNone())
	})

	t.Run("batch keeps every operation", func(t *testing.T) {
		e := Batch(Send(1), Send(2), None[int]())
		assert.Len(t, e.ops, 2)
	})

	t.Run("map converts sent actions", func(t *testing.T) {
		var got []string
		e := Map(Send(7), func(i int) string { return "n" + string(rune('0'+i)) })
		for _, op := range e.ops {
			op.run(context.Background(), func(s string) { got = append(got, s) })
		}
		assert.Equal(t, []string{"n7"}, got)
	})

	t.Run("cancellable tags operations", func(t *testing.T) {
		e := Batch(Send(1), Send(2)).Cancellable("x")
		for _, op := range e.ops {
			assert.Equal(t, "x", op.id)
		}
	})
}
