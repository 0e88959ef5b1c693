package cpu

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// Cpu is the simulation context of the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers RegisterSet // Register file, including Lo and Hi.
	Memory    *Memory     // Memory, exclusively owned by the Cpu.
	Pc        uint32      // Address of the next instruction to fetch.

	Ticks int // Instructions executed since the last reset.
}

// NewCpu creates a new CPU with empty memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(),
	}

	return
}

// String returns the register state of the CPU.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "pc: 0x%08x ticks: %d\n", cpu.Pc, cpu.Ticks)
	for row := range 8 {
		for col := range 4 {
			reg := CodeReg(row*4 + col)
			if col != 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%5v: 0x%08x", reg, cpu.Registers.Get(reg))
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "%5v: 0x%08x %5v: 0x%08x\n",
		REG_HI, cpu.Registers.Hi(), REG_LO, cpu.Registers.Lo())

	return sb.String()
}

// Reset clears the registers, the program counter, and the memory.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Memory.Reset()
	cpu.Pc = 0
	cpu.Ticks = 0
}

// CycleOnce fetches and executes a single instruction.
//
// running is false when the fetch address was never touched, or when the
// terminate word was fetched. In both cases the CPU state is not modified.
func (cpu *Cpu) CycleOnce() (running bool, err error) {
	pc := cpu.Pc

	if cpu.Memory.IsUntouched(pc) {
		if cpu.Verbose {
			log.Printf("cpu: %08x: untouched, halt", pc)
		}
		return
	}

	word := cpu.Memory.LoadWord(pc)
	if word == TERMINATE {
		if cpu.Verbose {
			log.Printf("cpu: %08x: terminate", pc)
		}
		return
	}

	cpu.Pc += 4
	cpu.Ticks++

	err = cpu.Execute(Decode(word))
	if err != nil {
		err = errors.Join(ErrInstruction{Pc: pc, Word: word}, err)
		return
	}

	running = true
	return
}

// CycleUntilTerminate runs until the program halts, or until an
// instruction fails.
func (cpu *Cpu) CycleUntilTerminate() (err error) {
	running := true
	for running {
		running, err = cpu.CycleOnce()
		if err != nil {
			return
		}
	}

	return
}

// Execute performs a single decoded instruction.
// The program counter must already point past the instruction.
func (cpu *Cpu) Execute(op Format) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: %08x: %v", cpu.Pc-4, op)
	}

	switch op := op.(type) {
	case FormatR:
		err = cpu.executeR(op)
	case FormatI:
		err = cpu.executeI(op)
	case FormatJ:
		cpu.executeJ(op)
	default:
		err = ErrUnknownInstruction
	}

	return
}

func (cpu *Cpu) executeR(op FormatR) (err error) {
	regs := &cpu.Registers

	rs := regs.Get(CodeReg(op.Rs))
	rt := regs.Get(CodeReg(op.Rt))
	rd := CodeReg(op.Rd)

	switch op.Function {
	case FUNCTION_ADD:
		var sum uint32
		sum, err = addChecked(rs, rt)
		if err != nil {
			return
		}
		regs.Set(rd, sum)
	case FUNCTION_ADDU:
		regs.Set(rd, rs+rt)
	case FUNCTION_SUB:
		var diff uint32
		diff, err = subChecked(rs, rt)
		if err != nil {
			return
		}
		regs.Set(rd, diff)
	case FUNCTION_SUBU:
		regs.Set(rd, rs-rt)
	case FUNCTION_AND:
		regs.Set(rd, rs&rt)
	case FUNCTION_OR:
		regs.Set(rd, rs|rt)
	case FUNCTION_XOR:
		regs.Set(rd, rs^rt)
	case FUNCTION_NOR:
		regs.Set(rd, ^(rs | rt))
	case FUNCTION_SLT:
		regs.Set(rd, boolWord(int32(rs) < int32(rt)))
	case FUNCTION_SLTU:
		regs.Set(rd, boolWord(rs < rt))
	case FUNCTION_SLL:
		regs.Set(rd, rt<<op.Shamt)
	case FUNCTION_SRL:
		regs.Set(rd, rt>>op.Shamt)
	case FUNCTION_SRA:
		regs.Set(rd, uint32(int32(rt)>>op.Shamt))
	case FUNCTION_SLLV:
		regs.Set(rd, rt<<(rs&0x1f))
	case FUNCTION_SRLV:
		regs.Set(rd, rt>>(rs&0x1f))
	case FUNCTION_SRAV:
		regs.Set(rd, uint32(int32(rt)>>(rs&0x1f)))
	case FUNCTION_MULT:
		product := uint64(int64(int32(rs)) * int64(int32(rt)))
		regs.SetHi(uint32(product >> 32))
		regs.SetLo(uint32(product))
	case FUNCTION_MULTU:
		product := uint64(rs) * uint64(rt)
		regs.SetHi(uint32(product >> 32))
		regs.SetLo(uint32(product))
	case FUNCTION_DIV:
		if rt == 0 {
			err = ErrDivideByZero
			return
		}
		// Go defines MinInt32 / -1 as MinInt32, with a zero remainder.
		regs.SetLo(uint32(int32(rs) / int32(rt)))
		regs.SetHi(uint32(int32(rs) % int32(rt)))
	case FUNCTION_DIVU:
		if rt == 0 {
			err = ErrDivideByZero
			return
		}
		regs.SetLo(rs / rt)
		regs.SetHi(rs % rt)
	case FUNCTION_MFHI:
		regs.Set(rd, regs.Hi())
	case FUNCTION_MFLO:
		regs.Set(rd, regs.Lo())
	case FUNCTION_JR:
		cpu.Pc = rs
	case FUNCTION_JALR:
		regs.Set(rd, cpu.Pc)
		cpu.Pc = rs
	default:
		err = ErrUnknownInstruction
	}

	return
}

func (cpu *Cpu) executeI(op FormatI) (err error) {
	regs := &cpu.Registers
	mem := cpu.Memory

	rs := regs.Get(CodeReg(op.Rs))
	rt := regs.Get(CodeReg(op.Rt))
	dst := CodeReg(op.Rt)
	imm := signExtend16(op.Immediate)
	uimm := uint32(op.Immediate)
	addr := rs + imm

	switch op.Opcode {
	case OPCODE_BEQ:
		if rs == rt {
			cpu.branchTo(op.Immediate)
		}
	case OPCODE_BNE:
		if rs != rt {
			cpu.branchTo(op.Immediate)
		}
	case OPCODE_BGTZ:
		if int32(rs) > 0 {
			cpu.branchTo(op.Immediate)
		}
	case OPCODE_BLEZ:
		if int32(rs) <= 0 {
			cpu.branchTo(op.Immediate)
		}
	case OPCODE_REGIMM:
		var taken, link bool
		switch op.Rt {
		case REGIMM_BLTZ:
			taken = int32(rs) < 0
		case REGIMM_BGEZ:
			taken = int32(rs) >= 0
		case REGIMM_BLTZAL:
			taken = int32(rs) < 0
			link = true
		case REGIMM_BGEZAL:
			taken = int32(rs) >= 0
			link = true
		default:
			err = ErrUnknownInstruction
			return
		}
		if taken {
			if link {
				regs.Set(REG_RA, cpu.Pc)
			}
			cpu.branchTo(op.Immediate)
		}
	case OPCODE_ADDI:
		var sum uint32
		sum, err = addChecked(rs, imm)
		if err != nil {
			return
		}
		regs.Set(dst, sum)
	case OPCODE_ADDIU:
		regs.Set(dst, rs+imm)
	case OPCODE_SLTI:
		regs.Set(dst, boolWord(int32(rs) < int32(imm)))
	case OPCODE_SLTIU:
		regs.Set(dst, boolWord(rs < imm))
	case OPCODE_ANDI:
		regs.Set(dst, rs&uimm)
	case OPCODE_ORI:
		regs.Set(dst, rs|uimm)
	case OPCODE_XORI:
		regs.Set(dst, rs^uimm)
	case OPCODE_LUI:
		regs.Set(dst, uimm<<16)
	case OPCODE_LB, OPCODE_LBU:
		regs.Set(dst, uint32(mem.Byte(addr)))
	case OPCODE_LH, OPCODE_LHU:
		regs.Set(dst, uint32(mem.LoadHalf(addr)))
	case OPCODE_LW:
		regs.Set(dst, mem.LoadWord(addr))
	case OPCODE_SB:
		mem.SetByte(addr, byte(rt))
	case OPCODE_SH:
		mem.StoreHalf(addr, uint16(rt))
	case OPCODE_SW:
		mem.StoreWord(addr, rt)
	default:
		err = ErrUnknownInstruction
	}

	return
}

func (cpu *Cpu) executeJ(op FormatJ) {
	if op.Link {
		cpu.Registers.Set(REG_RA, cpu.Pc)
	}
	cpu.Pc = (cpu.Pc & 0xf0000000) | (op.Address << 2)
}

// branchTo moves the program counter by a signed word offset.
func (cpu *Cpu) branchTo(offset uint16) {
	cpu.Pc += branchDelta(offset)
}
