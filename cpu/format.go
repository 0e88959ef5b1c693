package cpu

import (
	"fmt"
)

// Function codes of R-format instructions.
const (
	FUNCTION_SLL     = 0x00 // sll
	FUNCTION_SRL     = 0x02 // srl
	FUNCTION_SRA     = 0x03 // sra
	FUNCTION_SLLV    = 0x04 // sllv
	FUNCTION_SRLV    = 0x06 // srlv
	FUNCTION_SRAV    = 0x07 // srav
	FUNCTION_JR      = 0x08 // jr
	FUNCTION_JALR    = 0x09 // jalr
	FUNCTION_SYSCALL = 0x0c // syscall
	FUNCTION_MFHI    = 0x10 // mfhi
	FUNCTION_MFLO    = 0x12 // mflo
	FUNCTION_MULT    = 0x18 // mult
	FUNCTION_MULTU   = 0x19 // multu
	FUNCTION_DIV     = 0x1a // div
	FUNCTION_DIVU    = 0x1b // divu
	FUNCTION_ADD     = 0x20 // add
	FUNCTION_ADDU    = 0x21 // addu
	FUNCTION_SUB     = 0x22 // sub
	FUNCTION_SUBU    = 0x23 // subu
	FUNCTION_AND     = 0x24 // and
	FUNCTION_OR      = 0x25 // or
	FUNCTION_XOR     = 0x26 // xor
	FUNCTION_NOR     = 0x27 // nor
	FUNCTION_SLT     = 0x2a // slt
	FUNCTION_SLTU    = 0x2b // sltu
)

// Opcodes of I-format and J-format instructions.
const (
	OPCODE_SPECIAL = 0x00 // R-format
	OPCODE_REGIMM  = 0x01 // bltz, bgez, bltzal, bgezal
	OPCODE_J       = 0x02 // j
	OPCODE_JAL     = 0x03 // jal
	OPCODE_BEQ     = 0x04 // beq
	OPCODE_BNE     = 0x05 // bne
	OPCODE_BLEZ    = 0x06 // blez
	OPCODE_BGTZ    = 0x07 // bgtz
	OPCODE_ADDI    = 0x08 // addi
	OPCODE_ADDIU   = 0x09 // addiu
	OPCODE_SLTI    = 0x0a // slti
	OPCODE_SLTIU   = 0x0b // sltiu
	OPCODE_ANDI    = 0x0c // andi
	OPCODE_ORI     = 0x0d // ori
	OPCODE_XORI    = 0x0e // xori
	OPCODE_LUI     = 0x0f // lui
	OPCODE_LB      = 0x20 // lb
	OPCODE_LH      = 0x21 // lh
	OPCODE_LW      = 0x23 // lw
	OPCODE_LBU     = 0x24 // lbu
	OPCODE_LHU     = 0x25 // lhu
	OPCODE_SB      = 0x28 // sb
	OPCODE_SH      = 0x29 // sh
	OPCODE_SW      = 0x2b // sw
)

// Values of the rt field selecting an OPCODE_REGIMM branch.
const (
	REGIMM_BLTZ   = 0x00 // bltz
	REGIMM_BGEZ   = 0x01 // bgez
	REGIMM_BLTZAL = 0x10 // bltzal
	REGIMM_BGEZAL = 0x11 // bgezal
)

// TERMINATE is the word that halts execution when fetched.
const TERMINATE = uint32(0b011010_00000_00000_0000000000000010)

const (
	FORMAT_R_MASK  = uint32(0xfc000000) // Opcode field, zero for R-format.
	FORMAT_J_MASK  = uint32(0xf8000000) // Opcode field less the link bit.
	FORMAT_J_VALUE = uint32(0x08000000) // Opcodes j and jal.
)

// Format is a decoded instruction word.
type Format interface {
	// Encode places the fields into a word. Field values wider than
	// their slots spill into the neighboring fields.
	Encode() uint32
	fmt.Stringer
}

// FormatR is a register-register instruction.
type FormatR struct {
	Rs       uint8 // 5 bits
	Rt       uint8 // 5 bits
	Rd       uint8 // 5 bits
	Shamt    uint8 // 5 bits
	Function uint8 // 6 bits
}

// FormatI is a register-immediate instruction.
type FormatI struct {
	Opcode    uint8  // 6 bits
	Rs        uint8  // 5 bits
	Rt        uint8  // 5 bits
	Immediate uint16 // 16 bits
}

// FormatJ is a jump instruction.
type FormatJ struct {
	Address uint32 // 26 bits, the target word address.
	Link    bool   // Set for jal.
}

func (op FormatR) Encode() uint32 {
	return uint32(op.Function) |
		uint32(op.Shamt)<<6 |
		uint32(op.Rd)<<11 |
		uint32(op.Rt)<<16 |
		uint32(op.Rs)<<21
}

func (op FormatI) Encode() uint32 {
	return uint32(op.Immediate) |
		uint32(op.Rt)<<16 |
		uint32(op.Rs)<<21 |
		uint32(op.Opcode)<<26
}

func (op FormatJ) Encode() (word uint32) {
	word = FORMAT_J_VALUE | op.Address
	if op.Link {
		word |= 1 << 26
	}
	return
}

func (op FormatR) String() string {
	return fmt.Sprintf("R{rs:%v rt:%v rd:%v shamt:%d function:0x%02x}",
		CodeReg(op.Rs), CodeReg(op.Rt), CodeReg(op.Rd), op.Shamt, op.Function)
}

func (op FormatI) String() string {
	return fmt.Sprintf("I{opcode:0x%02x rs:%v rt:%v immediate:0x%04x}",
		op.Opcode, CodeReg(op.Rs), CodeReg(op.Rt), op.Immediate)
}

func (op FormatJ) String() string {
	return fmt.Sprintf("J{address:0x%07x link:%v}", op.Address, op.Link)
}

// Decode splits a word into its instruction format.
func Decode(word uint32) Format {
	switch {
	case word&FORMAT_R_MASK == 0:
		return FormatR{
			Rs:       uint8(word>>21) & 0x1f,
			Rt:       uint8(word>>16) & 0x1f,
			Rd:       uint8(word>>11) & 0x1f,
			Shamt:    uint8(word>>6) & 0x1f,
			Function: uint8(word) & 0x3f,
		}
	case word&FORMAT_J_MASK == FORMAT_J_VALUE:
		return FormatJ{
			Address: word & 0x03ffffff,
			Link:    word&(1<<26) != 0,
		}
	}
	return FormatI{
		Opcode:    uint8(word >> 26),
		Rs:        uint8(word>>21) & 0x1f,
		Rt:        uint8(word>>16) & 0x1f,
		Immediate: uint16(word),
	}
}
