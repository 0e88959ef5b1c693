package assembler

import (
	"math"
	"strconv"
	"strings"

	"github.com/mipsim/mipsim/cpu"
)

// Mnemonic is a grammar element.
type Mnemonic interface {
	// TryRead returns the index just past the element at start, or start
	// itself if the element does not match there.
	TryRead(code string, start int) (end int)
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isNameFirst(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isNameChar(c byte) bool {
	return isNameFirst(c) || isDigit(c) || c == '.'
}

// readName reads a label or mnemonic name.
func readName(code string, start int) (name string, end int) {
	end = start
	if end >= len(code) || !isNameFirst(code[end]) {
		return
	}
	for end < len(code) && isNameChar(code[end]) {
		end++
	}
	name = code[start:end]
	return
}

// whitespace reads blanks within a line. It always matches.
type whitespace struct{}

func (whitespace) TryRead(code string, start int) (end int) {
	end = start
	for end < len(code) && isBlank(code[end]) {
		end++
	}
	return
}

// comma reads a comma with optional blanks around it.
type comma struct{}

func (comma) TryRead(code string, start int) (end int) {
	index := whitespace{}.TryRead(code, start)
	if index >= len(code) || code[index] != ',' {
		return start
	}
	return whitespace{}.TryRead(code, index+1)
}

// register reads $N, $NN or $alias, pushing the register index.
type register struct {
	s *session
}

func (m register) TryRead(code string, start int) (end int) {
	index := start + 1
	if start >= len(code) || code[start] != '$' || index >= len(code) {
		return start
	}

	var reg int
	if isDigit(code[index]) {
		reg = int(code[index] - '0')
		index++
		if index < len(code) && isDigit(code[index]) {
			reg = reg*10 + int(code[index]-'0')
			index++
		}
		if reg >= 32 {
			m.s.messages.addError(start, index, f("register %v out of range", code[start:index]))
			reg = 0
		}
	} else {
		name, next := readName(code, index)
		alias, ok := cpu.RegisterIndex(strings.ToLower(name))
		if !ok {
			return start
		}
		reg = int(alias)
		index = next
	}

	m.s.params.PushSigned(int32(reg), start, index)
	return index
}

// scalar reads a decimal or 0x hexadecimal literal, optionally negative,
// or a $(...) expression, pushing its value.
type scalar struct {
	s *session
}

func (m scalar) TryRead(code string, start int) (end int) {
	if strings.HasPrefix(code[start:], "$(") {
		return m.s.expression(code, start)
	}

	index := start
	negative := false
	if index < len(code) && code[index] == '-' {
		negative = true
		index++
	}

	base := 10
	isBaseDigit := isDigit
	if strings.HasPrefix(code[index:], "0x") || strings.HasPrefix(code[index:], "0X") {
		base = 16
		isBaseDigit = isHexDigit
		index += 2
	}

	digits := index
	for index < len(code) && isBaseDigit(code[index]) {
		index++
	}
	if index == digits {
		return start
	}
	if index < len(code) && isNameChar(code[index]) {
		return start
	}

	magnitude, err := strconv.ParseUint(code[digits:index], base, 64)
	m.s.pushNumber(magnitude, negative, err == nil, start, index)
	return index
}

// pushNumber queues a parsed literal, recording an error if it does not
// fit in 32 bits.
func (s *session) pushNumber(magnitude uint64, negative bool, valid bool, start, end int) {
	switch {
	case !valid:
	case negative && magnitude <= -math.MinInt32:
		s.params.PushSigned(int32(-int64(magnitude)), start, end)
		return
	case !negative && magnitude <= math.MaxInt32:
		s.params.PushSigned(int32(magnitude), start, end)
		return
	case !negative && magnitude <= math.MaxUint32:
		s.params.PushUnsigned(uint32(magnitude), start, end)
		return
	}

	s.messages.addError(start, end, f("value %v does not fit in %d bits", s.code[start:end], 32))
	s.params.Push(Value{Deferred: true, Start: start, End: end})
}

// labelRef reads a label name, pushing its address. The address is
// deferred while the label is not yet defined.
type labelRef struct {
	s *session
}

func (m labelRef) TryRead(code string, start int) (end int) {
	name, end := readName(code, start)
	if end == start {
		return
	}

	entry := m.s.params.Push(Value{Deferred: true, Start: start, End: end})
	m.s.labels.Resolve(name, start, end, func(addr uint32) {
		entry.Bits = addr
		entry.Deferred = false
	})

	return
}

// offset reads imm($reg) or ($reg), pushing the immediate and then the
// register. A missing immediate is zero.
type offset struct {
	s *session
}

func (m offset) TryRead(code string, start int) (end int) {
	s := m.s
	mark := s.mark()

	index := scalar{s}.TryRead(code, start)
	if index == start {
		s.params.PushSigned(0, start, start)
	}

	index = whitespace{}.TryRead(code, index)
	if index >= len(code) || code[index] != '(' {
		s.rollback(mark)
		return start
	}

	index = whitespace{}.TryRead(code, index+1)
	next := register{s}.TryRead(code, index)
	if next == index {
		s.rollback(mark)
		return start
	}

	index = whitespace{}.TryRead(code, next)
	if index >= len(code) || code[index] != ')' {
		s.rollback(mark)
		return start
	}

	return index + 1
}

// labelDef reads name: and defines the label at the current address.
// Labels are only defined on the first pass.
type labelDef struct {
	s *session
}

func (m labelDef) TryRead(code string, start int) (end int) {
	name, end := readName(code, start)
	if end == start || end >= len(code) || code[end] != ':' {
		return start
	}
	end++

	s := m.s
	if s.first && !s.labels.Define(name, s.writer.CurrentAddress) {
		s.messages.addError(start, end, f("label %v defined multiple times", name))
	}

	return
}

// readString reads a double quoted string. The escapes \n, \t, \r, \0,
// \\ and \" are recognized.
func readString(code string, start int) (data []byte, end int, ok bool) {
	end = start
	if end >= len(code) || code[end] != '"' {
		return
	}

	escape := false
	for end++; end < len(code); end++ {
		c := code[end]
		if c == '\n' {
			break
		}
		if escape {
			switch c {
			case 'n':
				c = '\n'
			case 't':
				c = '\t'
			case 'r':
				c = '\r'
			case '0':
				c = 0
			}
			data = append(data, c)
			escape = false
			continue
		}
		switch c {
		case '\\':
			escape = true
		case '"':
			end++
			ok = true
			return
		default:
			data = append(data, c)
		}
	}

	end = start
	data = nil
	return
}
