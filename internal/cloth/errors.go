package cloth

import (
	"errors"
	"fmt"
)

// Domain errors for cloth operations.
var (
	// ErrInvalidConfiguration indicates a non-positive dimension or mass, or
	// a spring constant that is negative or not finite.
	ErrInvalidConfiguration = errors.New("cloth: invalid configuration")

	// ErrInvalidStepInput indicates a time step that is not a positive finite number.
	ErrInvalidStepInput = errors.New("cloth: invalid step input")

	// ErrReleased indicates a step on a cloth whose geometry was released by Reset.
	ErrReleased = errors.New("cloth: geometry released")

	// ErrDiverged indicates particle state became NaN or Inf.
	ErrDiverged = errors.New("cloth: simulation diverged (NaN or Inf detected)")
)

// StepError wraps an error with the step at which it happened.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
