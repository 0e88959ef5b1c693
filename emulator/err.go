package emulator

import (
	"github.com/mipsim/mipsim/assembler"
	"github.com/mipsim/mipsim/translate"
)

var f = translate.From

var (
	// Every assembly diagnostic returned by Assemble wraps ErrAssembly.
	ErrAssembly = assembler.ErrAssembly
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
