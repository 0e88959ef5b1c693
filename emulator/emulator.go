// Copyright 2025, The mipsim Authors

package emulator

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/mipsim/mipsim/assembler"
	"github.com/mipsim/mipsim/cpu"
)

// Emulator state. CPU + assembled source.
type Emulator struct {
	Verbose   bool                 // If set, enables verbose logging.
	*cpu.Cpu                       // Reference to the CPU simulation.
	Assembler *assembler.Assembler // Assembler for Code.
	Code      string               // Assembly source.
	Result    *assembler.Result    // Outcome of the last assembly.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:       cpu.NewCpu(),
		Assembler: assembler.New(),
	}

	return
}

// Assemble the source code into the CPU memory.
func (emu *Emulator) Assemble() (err error) {
	emu.Assembler.Verbose = emu.Verbose
	emu.Result = emu.Assembler.Assemble(emu.Code, emu.Cpu.Memory)

	err = emu.Result.Err()
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: %d bytes assembled", emu.Result.Size)
	}

	return
}

// Reset the CPU, and re-assemble the source code.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	return emu.Assemble()
}

// LoadImage resets the CPU and loads a raw memory image at address 0,
// in place of assembled source.
func (emu *Emulator) LoadImage(r io.Reader) (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Code = ""
	emu.Result = nil

	n, err := emu.Cpu.Memory.LoadImage(r, 0)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: %d byte image loaded", n)
	}

	return
}

// SaveImage writes the program as a raw memory image from address 0.
// That is the assembled size, terminate word included, if there is an
// assembly; otherwise memory up to its last non-zero word.
func (emu *Emulator) SaveImage(w io.Writer) (err error) {
	length := emu.Cpu.Memory.Extent(0)
	if emu.Result != nil {
		length = emu.Result.Size
	}

	return emu.Cpu.Memory.SaveImage(w, 0, length)
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the 1-based line number of the statement at the program
// counter, or 0 if no statement placed it.
func (emu *Emulator) LineNo() int {
	if emu.Result == nil {
		return 0
	}

	index, ok := emu.Result.SourceIndex(emu.Cpu.Pc)
	if !ok {
		return 0
	}

	return CountLinesToIndex(emu.Code, index)
}

// Tick performs a single instruction of the emulator.
// done is set once the program has terminated.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	running, err := emu.Cpu.CycleOnce()
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Err: err}
		return
	}

	done = !running
	return
}

// Run ticks until the program terminates, fails, or ctx is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// CountLinesToIndex returns the 1-based line number of the code at index.
func CountLinesToIndex(code string, index int) int {
	index = min(max(index, 0), len(code))
	return strings.Count(code[:index], "\n") + 1
}
