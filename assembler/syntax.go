package assembler

// SyntaxType is the operand shape of an instruction.
type SyntaxType int

//go:generate go tool stringer -linecomment -type=SyntaxType
const (
	SYNTAX_ARITH_LOG      = SyntaxType(0)  // ArithLog
	SYNTAX_ARITH_LOG_I    = SyntaxType(1)  // ArithLogI
	SYNTAX_DIV_MULT       = SyntaxType(2)  // DivMult
	SYNTAX_SHIFT          = SyntaxType(3)  // Shift
	SYNTAX_SHIFT_V        = SyntaxType(4)  // ShiftV
	SYNTAX_R_JUMP_OR_MOVE = SyntaxType(5)  // RJumpOrMove
	SYNTAX_BRANCH         = SyntaxType(6)  // Branch
	SYNTAX_BRANCH_Z       = SyntaxType(7)  // BranchZ
	SYNTAX_BRANCH_ALWAYS  = SyntaxType(8)  // BranchAlways
	SYNTAX_LOAD_I         = SyntaxType(9)  // LoadI
	SYNTAX_LOAD_STORE     = SyntaxType(10) // LoadStore
	SYNTAX_JUMP           = SyntaxType(11) // Jump
	SYNTAX_MOVE           = SyntaxType(12) // Move
	SYNTAX_LOAD_IMMEDIATE = SyntaxType(13) // LoadImmediate
	SYNTAX_LOAD_ADDRESS   = SyntaxType(14) // LoadAddress
)

// Operand kinds, in source order, for each syntax shape.
type operand int

const (
	OPERAND_REGISTER = operand(iota) // $reg
	OPERAND_SCALAR                   // immediate
	OPERAND_LABEL                    // label reference
	OPERAND_OFFSET                   // imm($reg)
)

var syntaxOperands = map[SyntaxType][]operand{
	SYNTAX_ARITH_LOG:      {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_REGISTER},
	SYNTAX_ARITH_LOG_I:    {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_SCALAR},
	SYNTAX_DIV_MULT:       {OPERAND_REGISTER, OPERAND_REGISTER},
	SYNTAX_SHIFT:          {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_SCALAR},
	SYNTAX_SHIFT_V:        {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_REGISTER},
	SYNTAX_R_JUMP_OR_MOVE: {OPERAND_REGISTER},
	SYNTAX_BRANCH:         {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_LABEL},
	SYNTAX_BRANCH_Z:       {OPERAND_REGISTER, OPERAND_LABEL},
	SYNTAX_BRANCH_ALWAYS:  {OPERAND_LABEL},
	SYNTAX_LOAD_I:         {OPERAND_REGISTER, OPERAND_SCALAR},
	SYNTAX_LOAD_STORE:     {OPERAND_REGISTER, OPERAND_OFFSET},
	SYNTAX_JUMP:           {OPERAND_LABEL},
	SYNTAX_MOVE:           {OPERAND_REGISTER, OPERAND_REGISTER},
	SYNTAX_LOAD_IMMEDIATE: {OPERAND_REGISTER, OPERAND_SCALAR},
	SYNTAX_LOAD_ADDRESS:   {OPERAND_REGISTER, OPERAND_LABEL},
}

// Words returns the number of machine words the shape assembles to.
func (st SyntaxType) Words() int {
	switch st {
	case SYNTAX_LOAD_IMMEDIATE, SYNTAX_LOAD_ADDRESS:
		return 2
	}
	return 1
}
