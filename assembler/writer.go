package assembler

// Memory is the target of an assembly.
type Memory interface {
	SetByte(addr uint32, value byte)
	StoreWord(addr uint32, word uint32)
	Reset()
}

// BinaryCodeWriter places words and bytes at an advancing address.
// Nothing reaches memory unless Enabled is set.
type BinaryCodeWriter struct {
	Memory         Memory
	CurrentAddress uint32
	Enabled        bool
}

// WriteWord aligns the address up to a multiple of four, then writes word.
// at is the address the word was placed at.
func (bw *BinaryCodeWriter) WriteWord(word uint32) (at uint32) {
	bw.Align(4)
	at = bw.CurrentAddress
	if bw.Enabled {
		bw.Memory.StoreWord(at, word)
	}
	bw.CurrentAddress += 4
	return
}

// WriteData writes bytes at the current address, without alignment.
func (bw *BinaryCodeWriter) WriteData(data []byte) {
	for _, b := range data {
		if bw.Enabled {
			bw.Memory.SetByte(bw.CurrentAddress, b)
		}
		bw.CurrentAddress++
	}
}

// Skip advances the address by count zero bytes.
// Memory starts out zeroed, so nothing is written.
func (bw *BinaryCodeWriter) Skip(count uint32) {
	bw.CurrentAddress += count
}

// Align rounds the address up to a multiple of size, a power of two.
func (bw *BinaryCodeWriter) Align(size uint32) {
	if size <= 1 {
		return
	}
	bw.CurrentAddress = (bw.CurrentAddress + size - 1) &^ (size - 1)
}
