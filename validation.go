package waterfall

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSteps is returned when a chain is started without a step slice.
	ErrNilSteps = errors.New("waterfall: steps cannot be nil")
	// ErrNilDone is returned when a chain is started without a completion callback.
	ErrNilDone = errors.New("waterfall: done callback cannot be nil")
	// ErrNilStep is wrapped by StepError when an element of the steps is nil.
	ErrNilStep = errors.New("step cannot be nil")
	// ErrEmptyName is wrapped by StepError when a step prints as "".
	ErrEmptyName = errors.New("step must provide a non-empty string representation")
)

// StepError reports which step of a sequence failed validation.
type StepError struct {
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d validation failed: %v", e.Index, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func validate[V any](steps []Step[V], done func(V)) error {
	if steps == nil {
		return ErrNilSteps
	}
	if done == nil {
		return ErrNilDone
	}
	for i, s := range steps {
		if s == nil {
			return &StepError{Index: i, Err: ErrNilStep}
		}
	}
	return nil
}

// StepValidator provides validation for steps and chains beyond the checks
// Run performs on its own.
type StepValidator[V any] struct{}

// ValidateStep validates a step for common issues.
func (v StepValidator[V]) ValidateStep(step Step[V]) error {
	if step == nil {
		return ErrNilStep
	}
	if step.String() == "" {
		return ErrEmptyName
	}
	return nil
}

// ValidateChain validates every step of a chain.
func (v StepValidator[V]) ValidateChain(c *Chain[V]) error {
	if c == nil {
		return fmt.Errorf("chain cannot be nil")
	}
	if c.Steps == nil {
		return ErrNilSteps
	}
	for i, step := range c.Steps {
		if err := v.ValidateStep(step); err != nil {
			return &StepError{Index: i, Err: err}
		}
	}
	return nil
}
