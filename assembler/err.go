package assembler

import (
	"errors"

	"github.com/mipsim/mipsim/translate"
)

var f = translate.From

var (
	ErrAssembly = errors.New(f("assembly failed"))
)

// ErrMessage is an error diagnostic returned as an error.
type ErrMessage Message

func (err ErrMessage) Error() string {
	return err.Text
}

func (err ErrMessage) Unwrap() error {
	return ErrAssembly
}
