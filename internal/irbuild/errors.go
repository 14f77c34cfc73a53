package irbuild

import "errors"

// Lowering errors. Callers match with errors.Is.
var (
	// ErrEmptyBody reports a function body whose final construct yields no value.
	ErrEmptyBody = errors.New("function body yields no value")
	// ErrBreakOutsideLoop reports a break with no enclosing loop.
	ErrBreakOutsideLoop = errors.New("break outside of any loop")
	// ErrNotInIR reports a construct the instruction set cannot express.
	ErrNotInIR = errors.New("construct has no IR lowering")
	// ErrFnRedefined reports a second definition of an already-defined function.
	ErrFnRedefined = errors.New("function redefined")
	// ErrFrameOverflow reports register demand beyond the frame capacity.
	ErrFrameOverflow = errors.New("register demand exceeds frame capacity")
)
