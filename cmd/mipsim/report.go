package main

import (
	"fmt"
	"io"

	"github.com/mipsim/mipsim/assembler"
	"github.com/mipsim/mipsim/emulator"
)

// ANSI colours for terminal diagnostics.
const (
	colorError = "\x1b[1;31m"
	colorInfo  = "\x1b[36m"
	colorReset = "\x1b[0m"
)

// report prints the diagnostics of an assembly as file:line: kind: text,
// and returns the number of errors. Informational messages are only
// printed when verbose.
func report(w io.Writer, name string, code string, res *assembler.Result, verbose bool, color bool) (errors int) {
	for _, msg := range res.Messages {
		kind, tint := "info", colorInfo
		if msg.IsError {
			kind, tint = "error", colorError
			errors++
		} else if !verbose {
			continue
		}

		if color {
			kind = tint + kind + colorReset
		}

		line := emulator.CountLinesToIndex(code, msg.StartIndex)
		fmt.Fprintf(w, "%v:%d: %v: %v\n", name, line, kind, msg.Text)
	}

	return
}
