package waterfall

import (
	"context"
	"reflect"
	"slices"
	"strings"
)

var _ Step[typ] = (*Chain[typ])(nil)

// Chain is a reusable waterfall: an ordered list of steps plus middleware
// applied to each of them. A Chain is itself a step, so chains nest.
type Chain[V any] struct {
	Steps []Step[V]
	Mid[V]
}

// NewChain creates a new chain with the given middleware.
func NewChain[V any](mid ...Middleware[V]) *Chain[V] {
	return &Chain[V]{
		Mid:   mid,
		Steps: make([]Step[V], 0),
	}
}

// Then appends steps to the chain.
func (c *Chain[V]) Then(steps ...Step[V]) *Chain[V] {
	c.Steps = append(c.Steps, steps...)
	return c
}

// Start runs the chain from initial and calls done with the final value.
// It has the same contract as [Run]; c.Steps is left untouched.
func (c *Chain[V]) Start(initial V, done func(V)) error {
	if err := validate(c.Steps, done); err != nil {
		return err
	}
	return Run(initial, c.wrapped(), done)
}

// Wait runs the chain and blocks until it completes. See [Wait].
func (c *Chain[V]) Wait(ctx context.Context, initial V) (V, error) {
	if err := validate(c.Steps, func(V) {}); err != nil {
		var z V
		return z, err
	}
	return Wait(ctx, initial, c.wrapped())
}

// Run lets a chain act as a step of an enclosing chain. It panics if the
// chain is invalid, since a step has no error to return.
func (c *Chain[V]) Run(v V, next Next[V]) {
	if err := c.Start(v, next); err != nil {
		panic(err)
	}
}

// wrapped returns the steps with the middleware applied, the first
// middleware being the outermost.
func (c *Chain[V]) wrapped() []Step[V] {
	if c.Steps == nil {
		return nil
	}
	steps := make([]Step[V], len(c.Steps))
	for i, s := range c.Steps {
		if s == nil {
			continue
		}
		for _, m := range slices.Backward(c.Mid) {
			s = m(s)
		}
		steps[i] = s
	}
	return steps
}

// String renders the chain as a tree.
func (c *Chain[V]) String() string {
	var buf strings.Builder
	buf.WriteString("Chain[")
	buf.WriteString(typeName[V]())
	buf.WriteString("]")
	if c.Steps == nil {
		return buf.String()
	}
	steps := c.wrapped()
	for i, s := range steps {
		branch, indent := "├── ", "│   "
		if i == len(steps)-1 {
			branch, indent = "└── ", "    "
		}
		name := "<nil>"
		if s != nil {
			name = s.String()
		}
		for j, line := range strings.Split(name, "\n") {
			buf.WriteString("\n")
			if j == 0 {
				buf.WriteString(branch)
			} else {
				buf.WriteString(indent)
			}
			buf.WriteString(line)
		}
	}
	return buf.String()
}

// typeName returns the name of V without its package qualifier.
func typeName[V any]() string {
	name := reflect.TypeFor[V]().String()
	base := strings.TrimLeft(name, "*")
	if i := strings.LastIndexByte(base, '.'); i >= 0 && !strings.ContainsAny(base[:i], "[{ ") {
		return name[:len(name)-len(base)] + base[i+1:]
	}
	return name
}
