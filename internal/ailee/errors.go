package ailee

import "errors"

// Domain errors for Δv computation.
var (
	// ErrInvalidArgument indicates a parameter or sample outside its valid range.
	ErrInvalidArgument = errors.New("ailee: invalid argument")

	// ErrUnstable indicates the aggregation produced a non-finite value.
	ErrUnstable = errors.New("ailee: numerical instability (NaN or Inf)")
)
