package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Known failure causes. A *Error returned by the CPU resolves to one of
// these through errors.Cause or errors.Is.
var (
	ErrProgramTooLarge = errors.New("program does not fit in the program region")
	ErrInvalidAddress  = errors.New("address outside of memory")
	ErrMemoryViolation = errors.New("memory access out of range")
	ErrStackUnderflow  = errors.New("return with an empty call stack")
	ErrStackOverflow   = errors.New("call stack capacity exceeded")
)

// Error defines a runtime error.
type Error struct {
	Instruction        // Faulting instruction.
	Msg         string // Context.
	Err         error  // Underlying cause.
}

// NewError creates a new, formatted error message for the given instruction.
func NewError(instr *Instruction, err error, f string, argv ...interface{}) *Error {
	return &Error{
		Instruction: *instr,
		Msg:         fmt.Sprintf(f, argv...),
		Err:         err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %s: %v", e.IP, e.Msg, e.Err)
}

// Cause returns the underlying cause of the error.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Err }
