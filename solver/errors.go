package solver

import (
	"errors"
	"fmt"
)

// ErrNotConverged is matched by every NotConvergedError.
var ErrNotConverged = errors.New("solution did not converge")

// NotConvergedError reports the best point reached when the iteration budget ran out.
type NotConvergedError struct {
	Quantity   string
	X          float64
	Residual   float64
	Target     float64
	Actual     float64
	Iterations int
}

func newNotConverged(opts Options, x, residual float64, iterations int) *NotConvergedError {
	return &NotConvergedError{
		Quantity:   opts.Quantity,
		X:          x,
		Residual:   residual,
		Target:     opts.Target,
		Actual:     opts.Target - residual*opts.Scale,
		Iterations: iterations,
	}
}

func (e *NotConvergedError) Error() string {
	name := e.Quantity
	if name == "" {
		name = "residual"
	}
	return fmt.Sprintf("%s: %v after %d iterations (x=%g, target=%g, actual=%g, residual=%g)",
		name, ErrNotConverged, e.Iterations, e.X, e.Target, e.Actual, e.Residual)
}

func (e *NotConvergedError) Unwrap() error {
	return ErrNotConverged
}
