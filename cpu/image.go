package cpu

import (
	"bufio"
	"errors"
	"io"
)

// LoadImage copies a raw memory image into memory starting at base.
// The image is a byte stream; words within it are big-endian.
func (mem *Memory) LoadImage(r io.Reader, base uint32) (n int, err error) {
	br := bufio.NewReader(r)

	addr := base
	for {
		var b byte
		b, err = br.ReadByte()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}
		if n > 0 && addr == 0 {
			err = ErrImageAddress(base + uint32(n-1))
			return
		}
		mem.SetByte(addr, b)
		addr++
		n++
	}
}

// SaveImage writes length bytes of memory, starting at base, as a raw image.
// Pages that were never touched are written as zeros without being allocated.
func (mem *Memory) SaveImage(w io.Writer, base uint32, length uint32) (err error) {
	if length != 0 && base+length-1 < base {
		err = ErrImageAddress(base)
		return
	}

	bw := bufio.NewWriter(w)

	for offset := range length {
		addr := base + offset
		var b byte
		if !mem.IsUntouched(addr) {
			b = mem.Byte(addr)
		}
		err = bw.WriteByte(b)
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

// Extent returns the span from base to the last non-zero byte in memory
// at or above base, rounded up to a whole word.
func (mem *Memory) Extent(base uint32) (length uint32) {
	for index := int(PAGE_COUNT) - 1; index >= int(base>>PAGE_SHIFT); index-- {
		page := mem.page[index]
		if page == nil {
			continue
		}
		start := uint32(index) << PAGE_SHIFT
		for offset := PAGE_SIZE - 1; offset >= 0; offset-- {
			addr := start + uint32(offset)
			if addr < base {
				break
			}
			if page[offset] != 0 {
				length = (addr - base + 4) &^ 3
				return
			}
		}
	}

	return
}
