package cpu

// addChecked adds two words as signed 32-bit values.
// ErrOverflow is returned if the signed result does not fit.
func addChecked(a, b uint32) (sum uint32, err error) {
	sum = a + b
	// Overflow when both operands share a sign that the sum does not.
	if (^(a ^ b) & (a ^ sum) & 0x80000000) != 0 {
		err = ErrOverflow
	}
	return
}

// subChecked subtracts two words as signed 32-bit values.
// ErrOverflow is returned if the signed result does not fit.
func subChecked(a, b uint32) (diff uint32, err error) {
	diff = a - b
	// Overflow when the operands differ in sign, and the result sign
	// differs from the minuend.
	if ((a ^ b) & (a ^ diff) & 0x80000000) != 0 {
		err = ErrOverflow
	}
	return
}

// signExtend16 widens a 16-bit immediate to a word.
func signExtend16(imm uint16) uint32 {
	return uint32(int32(int16(imm)))
}

// branchDelta converts a 16-bit branch field to a byte displacement.
func branchDelta(offset uint16) (delta uint32) {
	delta = uint32(offset) << 2
	if delta&(1<<17) != 0 {
		delta |= 0xfffc0000
	}
	return
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
