package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word   uint32
		format Format
	}){
		// add $3,$4,$5
		{0x00851820, FormatR{Rs: 4, Rt: 5, Rd: 3, Function: FUNCTION_ADD}},
		// sll $2,$2,4
		{0x00021100, FormatR{Rt: 2, Rd: 2, Shamt: 4, Function: FUNCTION_SLL}},
		// addi $8,$0,-1
		{0x2008ffff, FormatI{Opcode: OPCODE_ADDI, Rt: 8, Immediate: 0xffff}},
		// beq $3,$4,-1
		{0x1064ffff, FormatI{Opcode: OPCODE_BEQ, Rs: 3, Rt: 4, Immediate: 0xffff}},
		// bltzal $9,1
		{0x05300001, FormatI{Opcode: OPCODE_REGIMM, Rs: 9, Rt: REGIMM_BLTZAL, Immediate: 1}},
		// j 0x100
		{0x08000040, FormatJ{Address: 0x40}},
		// jal 0x100
		{0x0c000040, FormatJ{Address: 0x40, Link: true}},
		// the terminate word is I-format
		{TERMINATE, FormatI{Opcode: 0x1a, Immediate: 2}},
	}

	for _, entry := range table {
		format := Decode(entry.word)
		assert.Equal(entry.format, format, "0x%08x", entry.word)
		assert.Equal(entry.word, format.Encode(), "%v", format)
	}
}

func TestEncodeSpill(t *testing.T) {
	assert := assert.New(t)

	// Out of range fields are not validated.
	word := FormatR{Rd: 0x20}.Encode()
	assert.Equal(uint32(1<<16), word)
	assert.Equal(FormatR{Rt: 1}, Decode(word))
}

func FuzzFormatR(f *testing.F) {
	f.Add(uint8(0), uint8(0), uint8(0), uint8(0), uint8(0))
	f.Add(uint8(31), uint8(31), uint8(31), uint8(31), uint8(63))

	f.Fuzz(func(t *testing.T, rs, rt, rd, shamt, function uint8) {
		assert := assert.New(t)

		op := FormatR{
			Rs:       rs & 0x1f,
			Rt:       rt & 0x1f,
			Rd:       rd & 0x1f,
			Shamt:    shamt & 0x1f,
			Function: function & 0x3f,
		}
		assert.Equal(op, Decode(op.Encode()))
	})
}

func FuzzFormatI(f *testing.F) {
	f.Add(uint8(OPCODE_ADDI), uint8(0), uint8(0), uint16(0))
	f.Add(uint8(OPCODE_SW), uint8(31), uint8(31), uint16(0xffff))

	f.Fuzz(func(t *testing.T, opcode, rs, rt uint8, immediate uint16) {
		assert := assert.New(t)

		opcode &= 0x3f
		// Opcode zero is R-format, and opcodes j/jal are J-format.
		if opcode == OPCODE_SPECIAL || opcode == OPCODE_J || opcode == OPCODE_JAL {
			return
		}

		op := FormatI{
			Opcode:    opcode,
			Rs:        rs & 0x1f,
			Rt:        rt & 0x1f,
			Immediate: immediate,
		}
		assert.Equal(op, Decode(op.Encode()))
	})
}

func FuzzFormatJ(f *testing.F) {
	f.Add(uint32(0), false)
	f.Add(uint32(0x03ffffff), true)

	f.Fuzz(func(t *testing.T, address uint32, link bool) {
		assert := assert.New(t)

		op := FormatJ{Address: address & 0x03ffffff, Link: link}
		assert.Equal(op, Decode(op.Encode()))
	})
}
