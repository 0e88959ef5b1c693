package cpu

import (
	"errors"

	"github.com/mipsim/mipsim/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrOverflow           = errors.New(f("arithmetic overflow"))
	ErrUnknownInstruction = errors.New(f("unknown instruction"))
	ErrDivideByZero       = errors.New(f("divide by zero"))

	// Image errors
	ErrImageOverrun = errors.New(f("image exceeds address space"))
)

// ErrInstruction locates a fault at the instruction that raised it.
type ErrInstruction struct {
	Pc   uint32 // Address the word was fetched from.
	Word uint32 // Instruction word.
}

func (err ErrInstruction) Error() string {
	return f("pc 0x%08x word 0x%08x %v", err.Pc, err.Word, Decode(err.Word))
}

func (err ErrInstruction) Is(target error) (ok bool) {
	_, ok = target.(ErrInstruction)
	return
}

// ErrImageAddress reports the address at which an image ran out of space.
type ErrImageAddress uint32

func (err ErrImageAddress) Error() string {
	return f("image exceeds address space at 0x%08x", uint32(err))
}

func (err ErrImageAddress) Unwrap() error {
	return ErrImageOverrun
}
