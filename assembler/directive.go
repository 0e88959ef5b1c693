package assembler

import (
	"strings"
)

// directiveNames lists the recognized directives.
var directiveNames = []string{
	".align",
	".ascii",
	".asciiz",
	".byte",
	".data",
	".global",
	".globl",
	".space",
	".text",
	".word",
}

// directive reads an assembler directive.
//
//	.text, .data             accepted, no effect
//	.ascii "s", .asciiz "s"  place a string, .asciiz adds a zero byte
//	.globl name              requires name to be defined
//	.word v, ...             place words; v is a scalar or a label
//	.byte v, ...             place bytes
//	.space n                 reserve n zero bytes
//	.align n                 align to 1<<n bytes
type directive struct {
	s *session
}

func (m directive) TryRead(code string, start int) (end int) {
	if start >= len(code) || code[start] != '.' {
		return start
	}
	name, index := readName(code, start+1)
	if index == start+1 {
		return start
	}

	s := m.s
	mark := s.mark()
	end = start

	switch strings.ToLower(name) {
	case "text", "data":
		end = index
	case "ascii", "asciiz":
		index = whitespace{}.TryRead(code, index)
		data, next, ok := readString(code, index)
		if !ok {
			break
		}
		if strings.EqualFold(name, "asciiz") {
			data = append(data, 0)
		}
		s.emitData(data)
		end = next
	case "globl", "global":
		index = whitespace{}.TryRead(code, index)
		next := labelRef{s}.TryRead(code, index)
		if next == index {
			break
		}
		end = next
	case "word":
		index = whitespace{}.TryRead(code, index)
		next := m.list(code, index, scalar{s}, labelRef{s})
		if next == index {
			break
		}
		for s.params.Len() > 0 {
			value, _ := s.params.Pop()
			word := value.Bits
			if value.Deferred {
				word = 0
			}
			s.emitWord(word, start)
		}
		end = next
	case "byte":
		index = whitespace{}.TryRead(code, index)
		next := m.list(code, index, scalar{s})
		if next == index {
			break
		}
		var data []byte
		for s.params.Len() > 0 {
			value, _ := s.params.Pop()
			if !value.Deferred && !value.FitsSigned(8) && !value.FitsUnsigned(8) {
				s.messages.addError(value.Start, value.End, f("value %v does not fit in %d bits", value.Int64(), 8))
			}
			data = append(data, byte(value.Bits))
		}
		s.emitData(data)
		end = next
	case "space":
		index = whitespace{}.TryRead(code, index)
		next := scalar{s}.TryRead(code, index)
		if next == index {
			break
		}
		value, _ := s.params.Pop()
		s.writer.Skip(s.layout(name, value, 32))
		s.labels.Written()
		end = next
	case "align":
		index = whitespace{}.TryRead(code, index)
		next := scalar{s}.TryRead(code, index)
		if next == index {
			break
		}
		value, _ := s.params.Pop()
		s.align(1 << s.layout(name, value, 4))
		end = next
	}

	if end == start {
		s.rollback(mark)
	}
	s.params.Reset()

	return
}

// list reads one or more comma separated items, each matched by the first
// of items that accepts it.
func (m directive) list(code string, start int, items ...Mnemonic) (end int) {
	index := start
	for {
		next := index
		for _, item := range items {
			next = item.TryRead(code, index)
			if next != index {
				break
			}
		}
		if next == index {
			return start
		}
		index = next

		next = comma{}.TryRead(code, index)
		if next == index {
			return index
		}
		index = next
	}
}

// layout checks the size operand of a directive that moves the address.
// It must be known on the first pass, or labels after it would move
// between passes.
func (s *session) layout(name string, value Value, bits uint) uint32 {
	if value.Deferred {
		if s.first {
			s.messages.addError(value.Start, value.End, f(".%v size must not depend on a later label", strings.ToLower(name)))
		}
		return 0
	}
	return s.unsigned(value, bits)
}
