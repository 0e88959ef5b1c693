package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mipsim/mipsim/assembler"
	"github.com/mipsim/mipsim/cpu"
)

func TestReport(t *testing.T) {
	assert := assert.New(t)

	code := "add $1,$2,$3\n\n???\n"
	res := assembler.Assemble(code, cpu.NewMemory())

	var sb strings.Builder
	errors := report(&sb, "x.s", code, res, false, false)
	assert.Equal(1, errors)
	assert.Equal("x.s:3: error: "+res.Messages[1].Text+"\n", sb.String())

	sb.Reset()
	errors = report(&sb, "x.s", code, res, true, false)
	assert.Equal(1, errors)
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	assert.Len(lines, 2)
	assert.True(strings.HasPrefix(lines[0], "x.s:1: info: add "))

	sb.Reset()
	report(&sb, "x.s", code, res, false, true)
	assert.Equal("x.s:3: "+colorError+"error"+colorReset+": "+res.Messages[1].Text+"\n", sb.String())
}
