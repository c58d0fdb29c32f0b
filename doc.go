// Package waterfall chains callback-style steps so that each one runs only
// after the previous one has handed over its result.
//
// A value is threaded through an ordered list of steps. Each step receives
// the current value and a continuation; calling the continuation, right away
// or later from another goroutine, starts the next step with the new value.
// When the steps run out the completion callback receives the final value.
//
// # Core Concepts
//
//   - **Step**: the unit of work, an interface with a single method, `Run(v, next)`.
//   - **Next**: the continuation a step calls exactly once to move the chain on.
//   - **Run**: the runner. Sequential only: no parallelism, no error channel,
//     no retries, no timeouts, no cancellation.
//   - **Chain**: a reusable list of steps with middleware. Chains are steps and nest.
//   - **Middleware**: wraps a step, for example to log it ([LoggerMiddleware]),
//     to drop duplicate continuations ([OnceMiddleware]) or to halt a chain
//     from a flag ([StopMiddleware]).
//   - **Wait**: blocks until a chain completes or a context ends.
//
// # Step contract
//
// The runner trusts its steps. A step that never calls its continuation
// stalls the chain forever; one that calls it twice runs every later step,
// and the completion callback, twice. Errors are values: a step that can fail
// carries the failure in V for later steps to inspect.
//
// Synchronous continuations do not grow the stack, so chains of any length
// are safe.
package waterfall
