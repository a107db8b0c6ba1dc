package resonator

import "errors"

// Domain errors for resonator simulation.
var (
	// ErrInvalidArgument indicates a parameter outside its valid range.
	ErrInvalidArgument = errors.New("resonator: invalid argument")

	// ErrUnstable indicates the integration produced a non-finite state.
	ErrUnstable = errors.New("resonator: numerical instability (NaN or Inf)")
)
