package cpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImage(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	mem.StoreWord(0x400000, 0x3c011001)
	mem.StoreWord(0x400004, 0x34240000)
	mem.SetByte(0x400009, 0x7f)

	length := mem.Extent(0x400000)
	assert.Equal(uint32(12), length)

	var buf bytes.Buffer
	assert.NoError(mem.SaveImage(&buf, 0x400000, length))
	assert.Equal([]byte{
		0x3c, 0x01, 0x10, 0x01,
		0x34, 0x24, 0x00, 0x00,
		0x00, 0x7f, 0x00, 0x00,
	}, buf.Bytes())

	other := NewMemory()
	n, err := other.LoadImage(bytes.NewReader(buf.Bytes()), 0)
	assert.NoError(err)
	assert.Equal(12, n)
	assert.Equal(uint32(0x3c011001), other.LoadWord(0))
	assert.Equal(uint32(0x34240000), other.LoadWord(4))
	assert.Equal(uint32(0x007f0000), other.LoadWord(8))
}

func TestImageUntouched(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	assert.Equal(uint32(0), mem.Extent(0))

	var buf bytes.Buffer
	assert.NoError(mem.SaveImage(&buf, 0x1000, 8))
	assert.Equal(make([]byte, 8), buf.Bytes())
	assert.Equal(0, mem.Pages())
}

func TestImageOverrun(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	_, err := mem.LoadImage(bytes.NewReader([]byte{1, 2, 3}), 0xfffffffe)
	assert.True(errors.Is(err, ErrImageOverrun))
	assert.Equal(byte(1), mem.Byte(0xfffffffe))
	assert.Equal(byte(2), mem.Byte(0xffffffff))

	var buf bytes.Buffer
	err = mem.SaveImage(&buf, 0xfffffffc, 8)
	assert.ErrorIs(err, ErrImageOverrun)
}
