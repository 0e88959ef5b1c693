package cpu

// CodeReg is a register index.
type CodeReg uint8

const (
	REG_ZERO = CodeReg(0)  // zero
	REG_AT   = CodeReg(1)  // at
	REG_V0   = CodeReg(2)  // v0
	REG_V1   = CodeReg(3)  // v1
	REG_A0   = CodeReg(4)  // a0
	REG_A1   = CodeReg(5)  // a1
	REG_A2   = CodeReg(6)  // a2
	REG_A3   = CodeReg(7)  // a3
	REG_T0   = CodeReg(8)  // t0
	REG_T1   = CodeReg(9)  // t1
	REG_T2   = CodeReg(10) // t2
	REG_T3   = CodeReg(11) // t3
	REG_T4   = CodeReg(12) // t4
	REG_T5   = CodeReg(13) // t5
	REG_T6   = CodeReg(14) // t6
	REG_T7   = CodeReg(15) // t7
	REG_S0   = CodeReg(16) // s0
	REG_S1   = CodeReg(17) // s1
	REG_S2   = CodeReg(18) // s2
	REG_S3   = CodeReg(19) // s3
	REG_S4   = CodeReg(20) // s4
	REG_S5   = CodeReg(21) // s5
	REG_S6   = CodeReg(22) // s6
	REG_S7   = CodeReg(23) // s7
	REG_T8   = CodeReg(24) // t8
	REG_T9   = CodeReg(25) // t9
	REG_K0   = CodeReg(26) // k0
	REG_K1   = CodeReg(27) // k1
	REG_GP   = CodeReg(28) // gp
	REG_SP   = CodeReg(29) // sp
	REG_FP   = CodeReg(30) // fp
	REG_RA   = CodeReg(31) // ra
	REG_LO   = CodeReg(32) // lo
	REG_HI   = CodeReg(33) // hi

	REG_COUNT = 34
)

// RegisterNames are the conventional aliases of the general purpose registers.
var RegisterNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// String returns the register alias.
func (reg CodeReg) String() string {
	switch {
	case reg < 32:
		return "$" + RegisterNames[reg]
	case reg == REG_LO:
		return "lo"
	case reg == REG_HI:
		return "hi"
	}
	return "?"
}

// RegisterIndex returns the register index for an alias, without the '$'.
func RegisterIndex(name string) (reg CodeReg, ok bool) {
	for n, alias := range RegisterNames {
		if alias == name {
			return CodeReg(n), true
		}
	}
	return
}

// RegisterSet is the general purpose register file plus Lo and Hi.
// Register zero always reads as zero.
type RegisterSet [REG_COUNT]uint32

// Get returns a register value.
func (rs *RegisterSet) Get(reg CodeReg) uint32 {
	if reg == REG_ZERO {
		return 0
	}
	return rs[reg]
}

// Set writes a register value. Writes to register zero are dropped.
func (rs *RegisterSet) Set(reg CodeReg, value uint32) {
	if reg == REG_ZERO {
		return
	}
	rs[reg] = value
}

func (rs *RegisterSet) Lo() uint32 { return rs[REG_LO] }
func (rs *RegisterSet) Hi() uint32 { return rs[REG_HI] }

func (rs *RegisterSet) SetLo(value uint32) { rs[REG_LO] = value }
func (rs *RegisterSet) SetHi(value uint32) { rs[REG_HI] = value }

// Reset clears every register.
func (rs *RegisterSet) Reset() {
	*rs = RegisterSet{}
}
