package waterfall

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Next is the continuation handed to a step. A step calls it exactly once,
// synchronously or later from any goroutine, with the value for the next
// step.
type Next[V any] func(V)

// Step is the basic unit of work in a waterfall. Run receives the current
// value and a continuation; it must eventually invoke next exactly once.
type Step[V any] interface {
	Run(v V, next Next[V])
	fmt.Stringer
}

// Name returns the name of a step.
func Name[V any](s Step[V]) string {
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

type typ struct{}

var (
	_ Step[typ] = (StepFunc[typ])(nil)
	_ Step[typ] = (*MidFunc[typ])(nil)
)

// StepFunc is an adapter to allow the use of ordinary functions as steps.
type StepFunc[V any] func(V, Next[V])

// Run calls f(v, next).
func (f StepFunc[V]) Run(v V, next Next[V]) {
	f(v, next)
}

// String returns the name of the function.
func (f StepFunc[V]) String() string {
	var z V
	return fmt.Sprintf("StepFunc[%T]", z)
}

// Func lifts a pure transformation into a step that continues synchronously.
func Func[V any](f func(V) V) StepFunc[V] {
	return func(v V, next Next[V]) {
		next(f(v))
	}
}

// Run threads initial through steps in order and calls done with the value
// produced by the last step, or with initial when steps is empty.
//
// Run returns once the chain completes or suspends on a step that has not
// yet called its continuation; the rest of the chain then runs from that
// continuation. Steps are trusted: a continuation that is never called
// stalls the chain, and one called twice runs the remaining steps again.
// Panics raised by a step are not recovered.
//
// A nil steps slice, a nil done or a nil element is rejected before any
// function is invoked.
func Run[V any](initial V, steps []Step[V], done func(V)) error {
	if err := validate(steps, done); err != nil {
		return err
	}
	c := &chain[V]{steps: steps, done: done}
	c.drive(initial, 0)
	return nil
}

// chain is the state shared by all continuations of one Run.
type chain[V any] struct {
	steps []Step[V]
	done  func(V)
}

// hand records a continuation call made while its step is still running,
// so the driving loop can pick the value up instead of growing the stack.
// A repeat call before the step returns flushes the held value first, so
// tails run in call order.
type hand[V any] struct {
	mu       sync.Mutex
	returned bool
	caught   bool
	flushed  bool
	v        V
}

// drive runs steps[i:] starting with v.
func (c *chain[V]) drive(v V, i int) {
	for ; i < len(c.steps); i++ {
		h := &hand[V]{}
		resume := i + 1
		c.steps[i].Run(v, func(nv V) {
			var z V
			h.mu.Lock()
			switch {
			case !h.returned && !h.caught && !h.flushed:
				h.caught = true
				h.v = nv
				h.mu.Unlock()
			case h.caught:
				held := h.v
				h.caught, h.flushed, h.v = false, true, z
				h.mu.Unlock()
				c.drive(held, resume)
				c.drive(nv, resume)
			default:
				h.mu.Unlock()
				c.drive(nv, resume)
			}
		})

		h.mu.Lock()
		h.returned = true
		caught, nv := h.caught, h.v
		var z V
		h.caught, h.v = false, z
		h.mu.Unlock()
		if !caught {
			// suspended or flushed: the continuation drives the rest
			return
		}
		v = nv
	}
	c.done(v)
}
