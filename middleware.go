package waterfall

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Middleware is a function that wraps a step to add functionality, such as
// logging.
type Middleware[V any] func(s Step[V]) Step[V]

// Mid is a slice of middleware.
type Mid[V any] []Middleware[V]

// MidFunc is the step returned by middleware: Fn runs in place of Next.
type MidFunc[V any] struct {
	Name string
	Next Step[V]
	Fn   func(V, Next[V])
}

// Run executes the function.
func (m *MidFunc[V]) Run(v V, next Next[V]) {
	m.Fn(v, next)
}

// String returns the middleware name around the wrapped step.
func (m *MidFunc[V]) String() string {
	if m.Next == nil {
		return m.Name
	}
	return m.Name + "(" + m.Next.String() + ")"
}

// Unwrap returns the step at the bottom of a stack of middleware.
func Unwrap[V any](s Step[V]) Step[V] {
	for {
		m, ok := s.(*MidFunc[V])
		if !ok || m.Next == nil {
			return s
		}
		s = m.Next
	}
}

// LoggerMiddleware returns a middleware that logs when a step starts and when
// it calls its continuation. Each activation is tagged with an ID from the
// current [IDGenerator].
func LoggerMiddleware[V any](l *slog.Logger) Middleware[V] {
	return func(next Step[V]) Step[V] {
		return &MidFunc[V]{
			Name: "Logger",
			Next: next,
			Fn: func(v V, cont Next[V]) {
				id := NewID()
				name := Name(Unwrap(next))
				start := time.Now()
				l.Info("start", "Type", name, "id", id, "STEP", next)
				next.Run(v, func(nv V) {
					l.Info("done", "Type", name, "id", id, "duration", time.Since(start),
						"Result", fmt.Sprintf("%v", nv))
					cont(nv)
				})
			},
		}
	}
}

// OnceMiddleware returns a middleware that forwards only the first
// continuation call of each step activation. Later calls are dropped and
// logged.
//
// Run itself never enforces this; a chain without this middleware re-runs
// its tail when a step continues twice.
func OnceMiddleware[V any]() Middleware[V] {
	return func(next Step[V]) Step[V] {
		return &MidFunc[V]{
			Name: "Once",
			Next: next,
			Fn: func(v V, cont Next[V]) {
				var called atomic.Bool
				next.Run(v, func(nv V) {
					if !called.CompareAndSwap(false, true) {
						slog.Warn("continuation called more than once", "Type", Name(Unwrap(next)), "STEP", next)
						return
					}
					cont(nv)
				})
			},
		}
	}
}

// StopMiddleware returns a middleware that halts the chain once stopped
// reports true: the wrapped step is skipped, or its continuation swallowed,
// and the completion callback never fires.
//
// This is the step-level way to cancel a chain; Run has no cancellation of
// its own.
func StopMiddleware[V any](stopped func() bool) Middleware[V] {
	return func(next Step[V]) Step[V] {
		return &MidFunc[V]{
			Name: "Stop",
			Next: next,
			Fn: func(v V, cont Next[V]) {
				if stopped() {
					return
				}
				next.Run(v, func(nv V) {
					if stopped() {
						return
					}
					cont(nv)
				})
			},
		}
	}
}
