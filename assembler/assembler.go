// Copyright 2025, The mipsim Authors

package assembler

import (
	"cmp"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/mipsim/mipsim/cpu"
	"github.com/mipsim/mipsim/internal"
)

// Assembler is a two pass assembler for the cpu instruction set.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Table   *Table // Instruction table. DefaultTable() if nil.
}

// New returns an assembler using the default instruction table.
func New() *Assembler {
	return &Assembler{
		Table: DefaultTable(),
	}
}

func (asm *Assembler) table() *Table {
	if asm.Table == nil {
		return DefaultTable()
	}
	return asm.Table
}

// Keywords iterates over the directives, then the instruction mnemonics.
func (asm *Assembler) Keywords() iter.Seq[string] {
	return internal.IterSeqConcat(slices.Values(directiveNames), slices.Values(asm.table().Names()))
}

// Assemble the default instruction table's language into memory.
func Assemble(code string, memory Memory) *Result {
	return New().Assemble(code, memory)
}

// Assemble code into memory, starting at address 0.
//
// Every problem found is reported in the result; none stops the scan.
// If there are any errors, memory is reset.
func (asm *Assembler) Assemble(code string, memory Memory) (res *Result) {
	s := &session{
		asm:          asm,
		code:         code,
		labels:       NewLabelRegistry(),
		writer:       BinaryCodeWriter{Memory: memory},
		source:       map[uint32]int{},
		instructions: map[string]*Instruction{},
	}

	s.pass(true)
	if s.messages.errors == 0 {
		s.pass(false)
	}

	if s.messages.errors == 0 {
		at := s.writer.WriteWord(cpu.TERMINATE)
		if asm.Verbose {
			log.Printf("asm: %08x: %08x terminate", at, cpu.TERMINATE)
		}
	} else {
		memory.Reset()
		clear(s.source)
		s.writer.CurrentAddress = 0
	}

	messages := s.messages.messages
	slices.SortStableFunc(messages, func(a, b Message) int {
		return cmp.Compare(a.StartIndex, b.StartIndex)
	})

	res = &Result{
		Messages: messages,
		Labels:   maps.Collect(s.labels.All()),
		Source:   s.source,
		Size:     s.writer.CurrentAddress,
	}

	if asm.Verbose {
		log.Printf("asm: %d bytes, %d label(s), %d error(s)", res.Size, len(res.Labels), s.messages.errors)
	}

	return
}

// session is the state of one Assemble call, shared by every matcher.
type session struct {
	asm          *Assembler
	code         string
	first        bool // First pass: define labels, write nothing.
	params       ParameterQueue
	labels       *LabelRegistry
	writer       BinaryCodeWriter
	messages     messageList
	source       map[uint32]int
	instructions map[string]*Instruction
}

// checkpoint is the undo point of a speculative read.
type checkpoint struct {
	params   int
	pending  int
	messages int
}

func (s *session) mark() checkpoint {
	return checkpoint{
		params:   s.params.mark(),
		pending:  s.labels.mark(),
		messages: len(s.messages.messages),
	}
}

func (s *session) rollback(cp checkpoint) {
	s.params.rollback(cp.params)
	s.labels.rollback(cp.pending)
	s.messages.truncate(cp.messages)
}

// emitWord writes a word for the statement at index. Labels defined in
// front of the word move with it if the write had to align.
func (s *session) emitWord(word uint32, index int) (at uint32) {
	before := s.writer.CurrentAddress
	at = s.writer.WriteWord(word)
	if at != before {
		s.labels.Realign(before, at)
	}
	s.labels.Written()

	if !s.first {
		s.source[at] = index
		if s.asm.Verbose {
			log.Printf("asm: %08x: %08x %v", at, word, cpu.Decode(word))
		}
	}

	return
}

// emitData writes unaligned bytes.
func (s *session) emitData(data []byte) {
	s.writer.WriteData(data)
	s.labels.Written()
}

// align rounds the address up to size, taking trailing labels along.
func (s *session) align(size uint32) {
	before := s.writer.CurrentAddress
	s.writer.Align(size)
	if s.writer.CurrentAddress != before {
		s.labels.Realign(before, s.writer.CurrentAddress)
	}
}

// instruction returns the matcher for a mnemonic, or nil.
func (s *session) instruction(name string) (in *Instruction) {
	name = strings.ToLower(name)
	in, ok := s.instructions[name]
	if ok {
		return
	}

	desc, ok := s.asm.table().Lookup(name)
	if ok {
		in = s.newInstruction(desc)
	}
	s.instructions[name] = in

	return
}

// statement tries a directive, then an instruction, then a label definition.
func (s *session) statement(start int) (end int) {
	end = directive{s}.TryRead(s.code, start)
	if end > start {
		return
	}

	name, _ := readName(s.code, start)
	if in := s.instruction(name); in != nil {
		end = in.TryRead(s.code, start)
		if end > start {
			return
		}
	}

	return labelDef{s}.TryRead(s.code, start)
}

// isSeparator is true for the characters after which a statement may
// start again while recovering from a syntax error.
func isSeparator(c byte) bool {
	return isBlank(c) || c == ',' || c == ':'
}

// pass walks the whole source once.
//
// Unmatched text is collected into a single syntax error that ends at
// the end of the line or at the next statement that matches.
func (s *session) pass(first bool) {
	s.first = first
	s.writer.CurrentAddress = 0
	s.writer.Enabled = !first
	s.params.Reset()

	errStart, errEnd := -1, -1
	flush := func() {
		if errStart >= 0 {
			s.messages.addError(errStart, errEnd, f("syntax error"))
			errStart = -1
		}
	}

	code := s.code
	index := 0
	for index < len(code) {
		c := code[index]
		switch {
		case isBlank(c):
			index++
			continue
		case c == '\n':
			flush()
			index++
			continue
		case c == '#':
			flush()
			for index < len(code) && code[index] != '\n' {
				index++
			}
			continue
		}

		if errStart < 0 || isSeparator(code[index-1]) {
			end := s.statement(index)
			if end > index {
				flush()
				index = end
				continue
			}
		}

		if errStart < 0 {
			errStart = index
		}
		errEnd = index + 1
		index++
	}
	flush()

	// Labels at the very end name the terminate word.
	s.align(4)

	missing := s.labels.Settle()
	if !first {
		for _, ref := range missing {
			s.messages.addError(ref.Start, ref.End, f("label %v not defined", ref.Name))
		}
	}

	if s.asm.Verbose {
		pass := 2
		if first {
			pass = 1
		}
		log.Printf("asm: pass %d: %d label(s), %d error(s)", pass, s.labels.Len(), s.messages.errors)
	}
}
