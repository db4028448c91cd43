package accum

import "errors"

// Sentinel errors for the accumulator bank.
var (
	ErrDuplicate     = errors.New("accumulator already booked")
	ErrInvalidLayout = errors.New("invalid accumulator layout")
	ErrFinalized     = errors.New("accumulator bank already finalized")
)
