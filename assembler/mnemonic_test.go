package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mipsim/mipsim/cpu"
)

func newTestSession(code string) *session {
	return &session{
		asm:          New(),
		code:         code,
		first:        true,
		labels:       NewLabelRegistry(),
		writer:       BinaryCodeWriter{Memory: cpu.NewMemory()},
		source:       map[uint32]int{},
		instructions: map[string]*Instruction{},
	}
}

func TestWhitespaceAndComma(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(4, whitespace{}.TryRead("a \t b", 1))
	assert.Equal(0, whitespace{}.TryRead("a", 0))
	assert.Equal(1, whitespace{}.TryRead(" \nb", 0))

	assert.Equal(1, comma{}.TryRead(",$1", 0))
	assert.Equal(3, comma{}.TryRead(" , $1", 0))
	assert.Equal(0, comma{}.TryRead(" $1", 0))
	assert.Equal(0, comma{}.TryRead("", 0))
}

func TestRegisterMatcher(t *testing.T) {
	table := [](struct {
		code string
		end  int
		reg  uint32
	}){
		{"$0", 2, 0},
		{"$31,", 3, 31},
		{"$t0", 3, 8},
		{"$RA", 3, 31},
		{"$zero", 5, 0},
		{"$foo", 0, 0},
		{"$", 0, 0},
		{"t0", 0, 0},
		{"", 0, 0},
	}

	for _, entry := range table {
		assert := assert.New(t)

		s := newTestSession(entry.code)
		end := register{s}.TryRead(entry.code, 0)
		assert.Equal(entry.end, end, entry.code)
		if end == 0 {
			assert.Equal(0, s.params.Len(), entry.code)
			continue
		}

		value, ok := s.params.Pop()
		assert.True(ok, entry.code)
		assert.True(value.Signed, entry.code)
		assert.Equal(entry.reg, value.Bits, entry.code)
	}
}

func TestRegisterMatcherRange(t *testing.T) {
	assert := assert.New(t)

	s := newTestSession("$32")
	assert.Equal(3, register{s}.TryRead(s.code, 0))
	assert.Equal(1, s.messages.errors)
	assert.Equal(f("register %v out of range", "$32"), s.messages.messages[0].Text)

	value, _ := s.params.Pop()
	assert.Equal(uint32(0), value.Bits)
}

func TestScalarMatcher(t *testing.T) {
	table := [](struct {
		code     string
		end      int
		bits     uint32
		signed   bool
		deferred bool
	}){
		{"123", 3, 123, true, false},
		{"-5)", 2, 0xfffffffb, true, false},
		{"0x1F", 4, 0x1f, true, false},
		{"0XFFFFFFFF", 10, 0xffffffff, false, false},
		{"2147483648", 10, 0x80000000, false, false},
		{"-2147483648", 11, 0x80000000, true, false},
		{"$(1+2)", 6, 3, true, false},
		{"$((1 << 4) | 1),", 15, 17, true, false},
		{"12abc", 0, 0, false, false},
		{"-", 0, 0, false, false},
		{"0x", 0, 0, false, false},
		{"abc", 0, 0, false, false},
		{"$(1+2", 0, 0, false, false},
		{"$(nope)", 7, 0, false, true},
	}

	for _, entry := range table {
		assert := assert.New(t)

		s := newTestSession(entry.code)
		end := scalar{s}.TryRead(entry.code, 0)
		assert.Equal(entry.end, end, entry.code)
		assert.Equal(0, s.messages.errors, entry.code)
		if end == 0 {
			assert.Equal(0, s.params.Len(), entry.code)
			continue
		}

		value, ok := s.params.Pop()
		assert.True(ok, entry.code)
		assert.Equal(entry.deferred, value.Deferred, entry.code)
		if entry.deferred {
			continue
		}
		assert.Equal(entry.bits, value.Bits, entry.code)
		assert.Equal(entry.signed, value.Signed, entry.code)
		assert.Equal(0, value.Start, entry.code)
		assert.Equal(end, value.End, entry.code)
	}
}

func TestScalarMatcherRange(t *testing.T) {
	assert := assert.New(t)

	for _, code := range []string{"-2147483649", "4294967296", "99999999999999999999999"} {
		s := newTestSession(code)
		assert.Equal(len(code), scalar{s}.TryRead(code, 0), code)
		assert.Equal(1, s.messages.errors, code)

		value, _ := s.params.Pop()
		assert.True(value.Deferred, code)
	}
}

func TestOffsetMatcher(t *testing.T) {
	table := [](struct {
		code string
		end  int
		imm  uint32
		reg  uint32
	}){
		{"8($sp)", 6, 8, 29},
		{"($a0)", 5, 0, 4},
		{"-4 ( $t1 )", 10, 0xfffffffc, 9},
		{"8", 0, 0, 0},
		{"8($sp", 0, 0, 0},
		{"8(sp)", 0, 0, 0},
		{"$sp", 0, 0, 0},
	}

	for _, entry := range table {
		assert := assert.New(t)

		s := newTestSession(entry.code)
		end := offset{s}.TryRead(entry.code, 0)
		assert.Equal(entry.end, end, entry.code)
		if end == 0 {
			assert.Equal(0, s.params.Len(), entry.code)
			continue
		}

		imm, _ := s.params.Pop()
		reg, _ := s.params.Pop()
		assert.Equal(entry.imm, imm.Bits, entry.code)
		assert.Equal(entry.reg, reg.Bits, entry.code)
	}
}

func TestLabelDefMatcher(t *testing.T) {
	assert := assert.New(t)

	s := newTestSession("loop: loop: next")
	s.writer.CurrentAddress = 0x20

	assert.Equal(5, labelDef{s}.TryRead(s.code, 0))
	assert.Equal(11, labelDef{s}.TryRead(s.code, 6))
	assert.Equal(12, labelDef{s}.TryRead(s.code, 12))

	addr, ok := s.labels.Lookup("loop")
	assert.True(ok)
	assert.Equal(uint32(0x20), addr)
	assert.Equal(1, s.messages.errors)
	assert.Equal(f("label %v defined multiple times", "loop"), s.messages.messages[0].Text)

	s.first = false
	assert.Equal(5, labelDef{s}.TryRead(s.code, 0))
	assert.Equal(1, s.messages.errors)
}

func TestLabelRefMatcher(t *testing.T) {
	assert := assert.New(t)

	s := newTestSession("back ahead")
	s.labels.Define("back", 0x40)

	assert.Equal(4, labelRef{s}.TryRead(s.code, 0))
	assert.Equal(10, labelRef{s}.TryRead(s.code, 5))
	assert.Equal(0, labelRef{s}.TryRead("$1", 0))

	back, _ := s.params.Pop()
	assert.False(back.Deferred)
	assert.Equal(uint32(0x40), back.Bits)

	s.labels.Define("ahead", 0x80)
	assert.Empty(s.labels.Settle())
	ahead, _ := s.params.Pop()
	assert.False(ahead.Deferred)
	assert.Equal(uint32(0x80), ahead.Bits)
	assert.Equal(5, ahead.Start)
	assert.Equal(10, ahead.End)
}

func TestReadString(t *testing.T) {
	table := [](struct {
		code string
		data string
		end  int
		ok   bool
	}){
		{`"abc"`, "abc", 5, true},
		{`"" x`, "", 2, true},
		{`"a\tb\"c\\\n\0"`, "a\tb\"c\\\n\x00", 15, true},
		{`"open`, "", 0, false},
		{"\"line\nbreak\"", "", 0, false},
		{`abc`, "", 0, false},
	}

	for _, entry := range table {
		assert := assert.New(t)

		data, end, ok := readString(entry.code, 0)
		assert.Equal(entry.ok, ok, entry.code)
		assert.Equal(entry.end, end, entry.code)
		assert.Equal(entry.data, string(data), entry.code)
	}
}
