package assembler

import (
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/mipsim/mipsim/cpu"
)

// Descriptor describes a single mnemonic.
type Descriptor struct {
	Name   string     // Lower case mnemonic.
	Syntax SyntaxType // Operand shape.
	Code   uint8      // Function code for R-format, opcode otherwise.
	Select uint8      // Fixed rt field, for the REGIMM and zero branches.
	Help   string     // One line usage summary.
}

// Table is an immutable set of instruction descriptors.
type Table struct {
	order []*Descriptor
	index map[string]*Descriptor
}

// NewTable builds a table from descriptors. Later duplicates are ignored.
func NewTable(descs ...Descriptor) (table *Table) {
	table = &Table{
		index: make(map[string]*Descriptor, len(descs)),
	}

	for _, desc := range descs {
		desc.Name = strings.ToLower(desc.Name)
		if _, ok := table.index[desc.Name]; ok {
			continue
		}
		entry := &desc
		table.order = append(table.order, entry)
		table.index[desc.Name] = entry
	}

	return
}

// Lookup finds a descriptor by mnemonic, ignoring case.
func (table *Table) Lookup(name string) (desc Descriptor, ok bool) {
	entry, ok := table.index[strings.ToLower(name)]
	if ok {
		desc = *entry
	}
	return
}

// All returns the descriptors in table order.
func (table *Table) All() iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		for _, entry := range table.order {
			if !yield(*entry) {
				return
			}
		}
	}
}

// Len is the number of descriptors.
func (table *Table) Len() int {
	return len(table.order)
}

// Names returns the sorted mnemonics.
func (table *Table) Names() (names []string) {
	for _, entry := range table.order {
		names = append(names, entry.Name)
	}
	slices.Sort(names)
	return
}

var defaultTable = sync.OnceValue(func() *Table {
	return NewTable(defaultDescriptors...)
})

// DefaultTable returns the shared table of every instruction the cpu executes,
// plus the pseudo instructions.
func DefaultTable() *Table {
	return defaultTable()
}

var defaultDescriptors = []Descriptor{
	{"add", SYNTAX_ARITH_LOG, cpu.FUNCTION_ADD, 0, "add $d,$s,$t: $d = $s + $t, failing on signed overflow."},
	{"addu", SYNTAX_ARITH_LOG, cpu.FUNCTION_ADDU, 0, "addu $d,$s,$t: $d = $s + $t, wrapping on overflow."},
	{"and", SYNTAX_ARITH_LOG, cpu.FUNCTION_AND, 0, "and $d,$s,$t: $d = $s & $t."},
	{"nor", SYNTAX_ARITH_LOG, cpu.FUNCTION_NOR, 0, "nor $d,$s,$t: $d = ~($s | $t)."},
	{"or", SYNTAX_ARITH_LOG, cpu.FUNCTION_OR, 0, "or $d,$s,$t: $d = $s | $t."},
	{"sub", SYNTAX_ARITH_LOG, cpu.FUNCTION_SUB, 0, "sub $d,$s,$t: $d = $s - $t, failing on signed overflow."},
	{"subu", SYNTAX_ARITH_LOG, cpu.FUNCTION_SUBU, 0, "subu $d,$s,$t: $d = $s - $t, wrapping on overflow."},
	{"xor", SYNTAX_ARITH_LOG, cpu.FUNCTION_XOR, 0, "xor $d,$s,$t: $d = $s ^ $t."},
	{"slt", SYNTAX_ARITH_LOG, cpu.FUNCTION_SLT, 0, "slt $d,$s,$t: $d = 1 if $s < $t (signed), else 0."},
	{"sltu", SYNTAX_ARITH_LOG, cpu.FUNCTION_SLTU, 0, "sltu $d,$s,$t: $d = 1 if $s < $t (unsigned), else 0."},

	{"addi", SYNTAX_ARITH_LOG_I, cpu.OPCODE_ADDI, 0, "addi $t,$s,i: $t = $s + i, failing on signed overflow."},
	{"addiu", SYNTAX_ARITH_LOG_I, cpu.OPCODE_ADDIU, 0, "addiu $t,$s,i: $t = $s + i, wrapping on overflow."},
	{"andi", SYNTAX_ARITH_LOG_I, cpu.OPCODE_ANDI, 0, "andi $t,$s,i: $t = $s & i."},
	{"ori", SYNTAX_ARITH_LOG_I, cpu.OPCODE_ORI, 0, "ori $t,$s,i: $t = $s | i."},
	{"xori", SYNTAX_ARITH_LOG_I, cpu.OPCODE_XORI, 0, "xori $t,$s,i: $t = $s ^ i."},
	{"slti", SYNTAX_ARITH_LOG_I, cpu.OPCODE_SLTI, 0, "slti $t,$s,i: $t = 1 if $s < i (signed), else 0."},
	{"sltiu", SYNTAX_ARITH_LOG_I, cpu.OPCODE_SLTIU, 0, "sltiu $t,$s,i: $t = 1 if $s < i (unsigned), else 0."},

	{"div", SYNTAX_DIV_MULT, cpu.FUNCTION_DIV, 0, "div $s,$t: lo = $s / $t, hi = $s % $t (signed)."},
	{"divu", SYNTAX_DIV_MULT, cpu.FUNCTION_DIVU, 0, "divu $s,$t: lo = $s / $t, hi = $s % $t (unsigned)."},
	{"mult", SYNTAX_DIV_MULT, cpu.FUNCTION_MULT, 0, "mult $s,$t: hi:lo = $s * $t (signed)."},
	{"multu", SYNTAX_DIV_MULT, cpu.FUNCTION_MULTU, 0, "multu $s,$t: hi:lo = $s * $t (unsigned)."},

	{"sll", SYNTAX_SHIFT, cpu.FUNCTION_SLL, 0, "sll $d,$t,a: $d = $t << a."},
	{"sra", SYNTAX_SHIFT, cpu.FUNCTION_SRA, 0, "sra $d,$t,a: $d = $t >> a, shifting in the sign bit."},
	{"srl", SYNTAX_SHIFT, cpu.FUNCTION_SRL, 0, "srl $d,$t,a: $d = $t >> a, shifting in zeros."},

	{"sllv", SYNTAX_SHIFT_V, cpu.FUNCTION_SLLV, 0, "sllv $d,$t,$s: $d = $t << $s."},
	{"srav", SYNTAX_SHIFT_V, cpu.FUNCTION_SRAV, 0, "srav $d,$t,$s: $d = $t >> $s, shifting in the sign bit."},
	{"srlv", SYNTAX_SHIFT_V, cpu.FUNCTION_SRLV, 0, "srlv $d,$t,$s: $d = $t >> $s, shifting in zeros."},

	{"jr", SYNTAX_R_JUMP_OR_MOVE, cpu.FUNCTION_JR, 0, "jr $s: jump to the address in $s."},
	{"jalr", SYNTAX_R_JUMP_OR_MOVE, cpu.FUNCTION_JALR, 0, "jalr $s: $ra = return address, then jump to the address in $s."},
	{"mfhi", SYNTAX_R_JUMP_OR_MOVE, cpu.FUNCTION_MFHI, 0, "mfhi $d: $d = hi."},
	{"mflo", SYNTAX_R_JUMP_OR_MOVE, cpu.FUNCTION_MFLO, 0, "mflo $d: $d = lo."},

	{"move", SYNTAX_MOVE, cpu.FUNCTION_ADDU, 0, "move $d,$s: $d = $s."},

	{"beq", SYNTAX_BRANCH, cpu.OPCODE_BEQ, 0, "beq $s,$t,label: branch to label if $s == $t."},
	{"bne", SYNTAX_BRANCH, cpu.OPCODE_BNE, 0, "bne $s,$t,label: branch to label if $s != $t."},

	{"bgtz", SYNTAX_BRANCH_Z, cpu.OPCODE_BGTZ, 0, "bgtz $s,label: branch to label if $s > 0."},
	{"blez", SYNTAX_BRANCH_Z, cpu.OPCODE_BLEZ, 0, "blez $s,label: branch to label if $s <= 0."},
	{"beqz", SYNTAX_BRANCH_Z, cpu.OPCODE_BEQ, 0, "beqz $s,label: branch to label if $s == 0."},
	{"bnez", SYNTAX_BRANCH_Z, cpu.OPCODE_BNE, 0, "bnez $s,label: branch to label if $s != 0."},
	{"bltz", SYNTAX_BRANCH_Z, cpu.OPCODE_REGIMM, cpu.REGIMM_BLTZ, "bltz $s,label: branch to label if $s < 0."},
	{"bgez", SYNTAX_BRANCH_Z, cpu.OPCODE_REGIMM, cpu.REGIMM_BGEZ, "bgez $s,label: branch to label if $s >= 0."},
	{"bltzal", SYNTAX_BRANCH_Z, cpu.OPCODE_REGIMM, cpu.REGIMM_BLTZAL, "bltzal $s,label: $ra = return address, then branch to label if $s < 0."},
	{"bgezal", SYNTAX_BRANCH_Z, cpu.OPCODE_REGIMM, cpu.REGIMM_BGEZAL, "bgezal $s,label: $ra = return address, then branch to label if $s >= 0."},

	{"b", SYNTAX_BRANCH_ALWAYS, cpu.OPCODE_BEQ, 0, "b label: branch to label."},

	{"lui", SYNTAX_LOAD_I, cpu.OPCODE_LUI, 0, "lui $t,i: $t = i << 16."},
	{"li", SYNTAX_LOAD_IMMEDIATE, cpu.OPCODE_LUI, 0, "li $t,i: $t = i (32 bits), as lui and ori."},
	{"la", SYNTAX_LOAD_ADDRESS, cpu.OPCODE_LUI, 0, "la $t,label: $t = address of label, as lui and ori."},

	{"lb", SYNTAX_LOAD_STORE, cpu.OPCODE_LB, 0, "lb $t,i($s): $t = byte at i + $s."},
	{"lbu", SYNTAX_LOAD_STORE, cpu.OPCODE_LBU, 0, "lbu $t,i($s): $t = byte at i + $s."},
	{"lh", SYNTAX_LOAD_STORE, cpu.OPCODE_LH, 0, "lh $t,i($s): $t = half-word at i + $s."},
	{"lhu", SYNTAX_LOAD_STORE, cpu.OPCODE_LHU, 0, "lhu $t,i($s): $t = half-word at i + $s."},
	{"lw", SYNTAX_LOAD_STORE, cpu.OPCODE_LW, 0, "lw $t,i($s): $t = word at i + $s."},
	{"sb", SYNTAX_LOAD_STORE, cpu.OPCODE_SB, 0, "sb $t,i($s): store the low byte of $t at i + $s."},
	{"sh", SYNTAX_LOAD_STORE, cpu.OPCODE_SH, 0, "sh $t,i($s): store the low half-word of $t at i + $s."},
	{"sw", SYNTAX_LOAD_STORE, cpu.OPCODE_SW, 0, "sw $t,i($s): store $t at i + $s."},

	{"j", SYNTAX_JUMP, cpu.OPCODE_J, 0, "j label: jump to label."},
	{"jal", SYNTAX_JUMP, cpu.OPCODE_JAL, 0, "jal label: $ra = return address, then jump to label."},
}
