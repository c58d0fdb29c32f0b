package waterfall

import (
	"context"
	"fmt"
)

// Wait runs steps from initial and blocks until the chain completes or ctx
// is done, returning the final value.
//
// Wait does not cancel the chain: when ctx ends first, steps that are still
// pending may run later and their result is discarded.
func Wait[V any](ctx context.Context, initial V, steps []Step[V]) (V, error) {
	var z V
	res := make(chan V, 1)
	err := Run(initial, steps, func(v V) {
		select {
		case res <- v:
		default:
		}
	})
	if err != nil {
		return z, err
	}

	select {
	case v := <-res:
		return v, nil
	default:
	}
	select {
	case v := <-res:
		return v, nil
	case <-ctx.Done():
		return z, fmt.Errorf("waiting for chain: %w", context.Cause(ctx))
	}
}
