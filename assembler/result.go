package assembler

import (
	"errors"
	"iter"
	"slices"

	"github.com/mipsim/mipsim/internal"
)

// Result is the outcome of one assembly run.
type Result struct {
	Messages []Message         // Diagnostics, ordered by source position.
	Labels   map[string]uint32 // Label addresses.
	Source   map[uint32]int    // Word address to statement source index.
	Size     uint32            // Bytes placed, including the terminate word.
}

// AnyErrors is true if an error diagnostic was recorded.
func (res *Result) AnyErrors() bool {
	return slices.ContainsFunc(res.Messages, func(msg Message) bool { return msg.IsError })
}

// Errors iterates over the error diagnostics only.
func (res *Result) Errors() iter.Seq[Message] {
	return internal.IterSeqFilter(slices.Values(res.Messages), func(msg Message) bool {
		return msg.IsError
	})
}

// Err returns nil on success, or every error diagnostic joined.
// Each one is an ErrMessage, and all of them are ErrAssembly.
func (res *Result) Err() (err error) {
	var errs []error
	for msg := range res.Errors() {
		errs = append(errs, ErrMessage(msg))
	}
	return errors.Join(errs...)
}

// SourceIndex returns the source index of the statement that placed the
// word at addr.
func (res *Result) SourceIndex(addr uint32) (index int, ok bool) {
	index, ok = res.Source[addr&^3]
	return
}
