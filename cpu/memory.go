package cpu

import (
	"encoding/binary"
)

const (
	PAGE_SHIFT = 20                     // Bits of address within a page.
	PAGE_SIZE  = 1 << PAGE_SHIFT        // Bytes per page (1 MiB).
	PAGE_COUNT = 1 << (32 - PAGE_SHIFT) // Pages in the 32-bit address space.
	PAGE_MASK  = uint32(PAGE_SIZE - 1)  // Offset within a page.
)

// Memory is a sparse, byte addressable, 4 GiB address space.
//
// Pages are allocated on the first access of any kind, and stay allocated
// until Reset. The zero value is an empty memory.
type Memory struct {
	page [PAGE_COUNT][]byte
}

// NewMemory returns an empty memory.
func NewMemory() *Memory {
	return &Memory{}
}

// slot returns the page holding addr, allocating it if needed, and the
// offset of addr within it.
func (mem *Memory) slot(addr uint32) (page []byte, offset uint32) {
	index := addr >> PAGE_SHIFT
	page = mem.page[index]
	if page == nil {
		page = make([]byte, PAGE_SIZE)
		mem.page[index] = page
	}
	offset = addr & PAGE_MASK
	return
}

// Byte returns the byte at addr.
func (mem *Memory) Byte(addr uint32) byte {
	page, offset := mem.slot(addr)
	return page[offset]
}

// SetByte stores a byte at addr.
func (mem *Memory) SetByte(addr uint32, value byte) {
	page, offset := mem.slot(addr)
	page[offset] = value
}

// LoadWord returns the big-endian word containing addr.
// The address is rounded down to a multiple of four.
func (mem *Memory) LoadWord(addr uint32) uint32 {
	page, offset := mem.slot(addr &^ 3)
	return binary.BigEndian.Uint32(page[offset:])
}

// StoreWord stores a big-endian word at addr rounded down to a multiple of four.
func (mem *Memory) StoreWord(addr uint32, word uint32) {
	page, offset := mem.slot(addr &^ 3)
	binary.BigEndian.PutUint32(page[offset:], word)
}

// LoadHalf returns the big-endian halfword at addr rounded down to a multiple of two.
func (mem *Memory) LoadHalf(addr uint32) uint16 {
	page, offset := mem.slot(addr &^ 1)
	return binary.BigEndian.Uint16(page[offset:])
}

// StoreHalf stores a big-endian halfword at addr rounded down to a multiple of two.
func (mem *Memory) StoreHalf(addr uint32, half uint16) {
	page, offset := mem.slot(addr &^ 1)
	binary.BigEndian.PutUint16(page[offset:], half)
}

// IsUntouched is true if the page holding addr has never been accessed.
func (mem *Memory) IsUntouched(addr uint32) bool {
	return mem.page[addr>>PAGE_SHIFT] == nil
}

// Pages returns the number of allocated pages.
func (mem *Memory) Pages() (count int) {
	for _, page := range mem.page {
		if page != nil {
			count++
		}
	}
	return
}

// Reset drops every page.
func (mem *Memory) Reset() {
	clear(mem.page[:])
}
