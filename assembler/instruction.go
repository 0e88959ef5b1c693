package assembler

import (
	"strings"

	"github.com/mipsim/mipsim/cpu"
)

// Instruction matches one mnemonic and its operands, and emits the
// encoded words.
type Instruction struct {
	Descriptor
	s        *session
	operands []Mnemonic
}

func (s *session) newInstruction(desc Descriptor) (in *Instruction) {
	in = &Instruction{
		Descriptor: desc,
		s:          s,
	}

	for _, kind := range syntaxOperands[desc.Syntax] {
		var operand Mnemonic
		switch kind {
		case OPERAND_REGISTER:
			operand = register{s}
		case OPERAND_SCALAR:
			operand = scalar{s}
		case OPERAND_LABEL:
			operand = labelRef{s}
		case OPERAND_OFFSET:
			operand = offset{s}
		}
		in.operands = append(in.operands, operand)
	}

	return
}

func (in *Instruction) TryRead(code string, start int) (end int) {
	s := in.s

	name, index := readName(code, start)
	if !strings.EqualFold(name, in.Name) {
		return start
	}

	mark := s.mark()
	index = whitespace{}.TryRead(code, index)
	for n, operand := range in.operands {
		if n > 0 {
			next := comma{}.TryRead(code, index)
			if next == index {
				s.rollback(mark)
				return start
			}
			index = next
		}
		next := operand.TryRead(code, index)
		if next == index {
			s.rollback(mark)
			return start
		}
		index = next
	}

	words := in.encode(start, index)
	s.params.Reset()
	for _, word := range words {
		s.emitWord(word, start)
	}

	if s.first {
		s.messages.addInfo(start, index, in.Help)
	}

	return index
}

// encode drains the parameter queue into machine words.
func (in *Instruction) encode(start, end int) (words []uint32) {
	s := in.s
	pop := func() (value Value) {
		value, _ = s.params.Pop()
		return
	}
	reg := func(value Value) uint8 {
		return uint8(value.Bits)
	}

	// Address the first word will be written to.
	at := (s.writer.CurrentAddress + 3) &^ 3

	var op cpu.Format
	switch in.Syntax {
	case SYNTAX_ARITH_LOG:
		rd, rs, rt := pop(), pop(), pop()
		op = cpu.FormatR{Rs: reg(rs), Rt: reg(rt), Rd: reg(rd), Function: in.Code}
	case SYNTAX_ARITH_LOG_I:
		rt, rs, imm := pop(), pop(), pop()
		op = cpu.FormatI{Opcode: in.Code, Rs: reg(rs), Rt: reg(rt), Immediate: s.immediate(imm)}
	case SYNTAX_DIV_MULT:
		rs, rt := pop(), pop()
		op = cpu.FormatR{Rs: reg(rs), Rt: reg(rt), Function: in.Code}
	case SYNTAX_SHIFT:
		rd, rt, sa := pop(), pop(), pop()
		op = cpu.FormatR{Rt: reg(rt), Rd: reg(rd), Shamt: uint8(s.unsigned(sa, 5)), Function: in.Code}
	case SYNTAX_SHIFT_V:
		rd, rt, rs := pop(), pop(), pop()
		op = cpu.FormatR{Rs: reg(rs), Rt: reg(rt), Rd: reg(rd), Function: in.Code}
	case SYNTAX_R_JUMP_OR_MOVE:
		r := pop()
		switch in.Code {
		case cpu.FUNCTION_MFHI, cpu.FUNCTION_MFLO:
			op = cpu.FormatR{Rd: reg(r), Function: in.Code}
		case cpu.FUNCTION_JALR:
			op = cpu.FormatR{Rs: reg(r), Rd: uint8(cpu.REG_RA), Function: in.Code}
		default:
			op = cpu.FormatR{Rs: reg(r), Function: in.Code}
		}
	case SYNTAX_MOVE:
		rd, rs := pop(), pop()
		op = cpu.FormatR{Rs: reg(rs), Rd: reg(rd), Function: in.Code}
	case SYNTAX_BRANCH:
		rs, rt, target := pop(), pop(), pop()
		op = cpu.FormatI{Opcode: in.Code, Rs: reg(rs), Rt: reg(rt), Immediate: s.branchOffset(target, at)}
	case SYNTAX_BRANCH_Z:
		rs, target := pop(), pop()
		op = cpu.FormatI{Opcode: in.Code, Rs: reg(rs), Rt: in.Select, Immediate: s.branchOffset(target, at)}
	case SYNTAX_BRANCH_ALWAYS:
		target := pop()
		op = cpu.FormatI{Opcode: in.Code, Immediate: s.branchOffset(target, at)}
	case SYNTAX_LOAD_I:
		rt, imm := pop(), pop()
		op = cpu.FormatI{Opcode: in.Code, Rt: reg(rt), Immediate: s.immediate(imm)}
	case SYNTAX_LOAD_STORE:
		rt, imm, rs := pop(), pop(), pop()
		op = cpu.FormatI{Opcode: in.Code, Rs: reg(rs), Rt: reg(rt), Immediate: s.immediate(imm)}
	case SYNTAX_JUMP:
		target := pop()
		op = cpu.FormatJ{Address: s.jumpTarget(target, at), Link: in.Code == cpu.OPCODE_JAL}
	case SYNTAX_LOAD_IMMEDIATE, SYNTAX_LOAD_ADDRESS:
		rt, value := pop(), pop()
		words = loadWord(reg(rt), value.Bits)
		return
	default:
		s.messages.addError(start, end, f("syntax error"))
		return
	}

	words = append(words, op.Encode())
	return
}

// loadWord loads a 32-bit constant with lui and ori.
func loadWord(rt uint8, value uint32) []uint32 {
	return []uint32{
		cpu.FormatI{Opcode: cpu.OPCODE_LUI, Rt: rt, Immediate: uint16(value >> 16)}.Encode(),
		cpu.FormatI{Opcode: cpu.OPCODE_ORI, Rs: rt, Rt: rt, Immediate: uint16(value)}.Encode(),
	}
}

// immediate checks a 16-bit immediate field. Both signed and unsigned
// readings are accepted, so -32768 through 65535 fit.
func (s *session) immediate(value Value) uint16 {
	if value.Deferred {
		return 0
	}
	if !value.FitsSigned(16) && !value.FitsUnsigned(16) {
		s.messages.addError(value.Start, value.End, f("value %v does not fit in %d bits", value.Int64(), 16))
		return 0
	}
	return uint16(value.Bits)
}

// unsigned checks an unsigned field of bits.
func (s *session) unsigned(value Value, bits uint) uint32 {
	if value.Deferred {
		return 0
	}
	if !value.FitsUnsigned(bits) {
		s.messages.addError(value.Start, value.End, f("value %v does not fit in %d bits", value.Int64(), bits))
		return 0
	}
	return value.Bits
}

// branchOffset is the word displacement from the instruction after at to
// the target.
func (s *session) branchOffset(target Value, at uint32) uint16 {
	if target.Deferred {
		return 0
	}

	delta := (int64(target.Bits) - int64(at) - 4) >> 2
	if delta < -0x8000 || delta > 0x7fff {
		s.messages.addError(target.Start, target.End,
			f("branch target %v is too far away", s.code[target.Start:target.End]))
		return 0
	}

	return uint16(delta)
}

// jumpTarget is the J-format word address of the target, which must lie
// in the same 256 MiB segment as the instruction after at.
func (s *session) jumpTarget(target Value, at uint32) uint32 {
	if target.Deferred {
		return 0
	}

	if (target.Bits^(at+4))&0xf0000000 != 0 {
		s.messages.addError(target.Start, target.End,
			f("branch target %v is too far away", s.code[target.Start:target.End]))
		return 0
	}

	return (target.Bits >> 2) & 0x03ffffff
}
