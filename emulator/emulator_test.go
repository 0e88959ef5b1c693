package emulator

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mipsim/mipsim/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu.Memory)
	assert.NotNil(emu.Assembler)
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	program := `# sum 1..3
	li $t0, 3

loop:	add $v0, $v0, $t0
	addi $t0, $t0, -1
	bnez $t0, loop
`
	emu := NewEmulator()
	emu.Code = program
	assert.NoError(emu.Reset())

	lines := []int{2, 2, 4, 5, 6, 4, 5, 6, 4, 5, 6}
	for n, line := range lines {
		assert.Equal(line, emu.LineNo(), "tick %d", n)
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	assert.Equal(0, emu.LineNo())
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)

	assert.Equal(uint32(6), emu.Registers.Get(cpu.REG_V0))
	assert.Equal(len(lines), emu.Ticks())
}

func TestEmulatorAssembleError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Code = "add $1,$2,$3\nbogus\n"
	err := emu.Reset()
	assert.ErrorIs(err, ErrAssembly)
	assert.True(emu.Result.AnyErrors())
	assert.True(emu.Memory.IsUntouched(0))

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Code = "li $t0, 0x7fffffff\naddi $t0, $t0, 1\n"
	assert.NoError(emu.Reset())

	err := emu.Run(context.Background())
	assert.ErrorIs(err, cpu.ErrOverflow)

	var rt *ErrRuntime
	assert.True(errors.As(err, &rt))
	assert.Equal(2, rt.LineNo)
	assert.Equal(uint32(0x7fffffff), emu.Registers.Get(cpu.REG_T0))
}

func TestEmulatorRunCancel(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Code = "spin: b spin"
	assert.NoError(emu.Reset())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := emu.Run(ctx)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, emu.Ticks())
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Code = "li $a0, 42"
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run(context.Background()))
	assert.Equal(uint32(42), emu.Registers.Get(cpu.REG_A0))
	assert.Equal(uint32(8), emu.Pc)

	emu.Code = "li $a1, 7"
	assert.NoError(emu.Reset())
	assert.Equal(uint32(0), emu.Registers.Get(cpu.REG_A0))
	assert.Equal(uint32(0), emu.Pc)
	assert.NoError(emu.Run(context.Background()))
	assert.Equal(uint32(7), emu.Registers.Get(cpu.REG_A1))
}

func TestCountLinesToIndex(t *testing.T) {
	table := [](struct {
		code  string
		index int
		line  int
	}){
		{"", 0, 1},
		{"abc", 2, 1},
		{"a\nb\nc", 2, 2},
		{"a\nb\nc", 4, 3},
		{"a\n", 1, 1},
		{"a\n", 2, 2},
		{"a\nb", -3, 1},
		{"a\nb", 99, 2},
	}

	for _, entry := range table {
		assert.Equal(t, entry.line, CountLinesToIndex(entry.code, entry.index), "%q %d", entry.code, entry.index)
	}
}

func TestEmulatorImage(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Code = "li $a0, 0x1234\naddiu $a0, $a0, 1\n"
	assert.NoError(emu.Reset())

	var image bytes.Buffer
	assert.NoError(emu.SaveImage(&image))
	assert.Equal(int(emu.Result.Size), image.Len())
	assert.Equal(16, image.Len())

	other := NewEmulator()
	assert.NoError(other.LoadImage(bytes.NewReader(image.Bytes())))
	assert.Nil(other.Result)
	assert.NoError(other.Run(context.Background()))
	assert.Equal(uint32(0x1235), other.Registers.Get(cpu.REG_A0))
	assert.Equal(0, other.LineNo())

	var again bytes.Buffer
	assert.NoError(other.SaveImage(&again))
	assert.Equal(image.Bytes(), again.Bytes())
}
