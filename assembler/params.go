package assembler

// Value is a single operand passed from a matcher to an encoder.
//
// Signed and unsigned operands carry the same 32-bit pattern; Signed tells
// how range checks interpret it.
type Value struct {
	Signed   bool   // Bits is a two's complement signed value.
	Bits     uint32 // Operand bit pattern.
	Deferred bool   // Placeholder for a value not known yet.
	Start    int    // First source index of the operand.
	End      int    // Source index just past the operand.
}

// Int64 returns the numeric value of the operand.
func (v Value) Int64() int64 {
	if v.Signed {
		return int64(int32(v.Bits))
	}
	return int64(v.Bits)
}

// FitsSigned is true if the value fits a two's complement field of bits.
func (v Value) FitsSigned(bits uint) bool {
	n := v.Int64()
	return n >= -(1<<(bits-1)) && n < (1<<(bits-1))
}

// FitsUnsigned is true if the value is not negative and fits bits.
func (v Value) FitsUnsigned(bits uint) bool {
	n := v.Int64()
	return n >= 0 && n < (1<<bits)
}

// ParameterQueue carries operands from matchers to encoders in order.
type ParameterQueue struct {
	values []*Value
	head   int
}

// Push appends a value, returning it for later patching.
func (pq *ParameterQueue) Push(value Value) (entry *Value) {
	entry = &value
	pq.values = append(pq.values, entry)
	return
}

// PushSigned appends a signed value.
func (pq *ParameterQueue) PushSigned(n int32, start, end int) {
	pq.Push(Value{Signed: true, Bits: uint32(n), Start: start, End: end})
}

// PushUnsigned appends an unsigned value.
func (pq *ParameterQueue) PushUnsigned(n uint32, start, end int) {
	pq.Push(Value{Bits: n, Start: start, End: end})
}

// Pop removes the oldest value. The zero Value is returned when empty.
func (pq *ParameterQueue) Pop() (value Value, ok bool) {
	if pq.head >= len(pq.values) {
		return
	}
	value = *pq.values[pq.head]
	pq.head++
	ok = true
	return
}

// Len is the number of values not yet popped.
func (pq *ParameterQueue) Len() int {
	return len(pq.values) - pq.head
}

// Reset empties the queue.
func (pq *ParameterQueue) Reset() {
	clear(pq.values)
	pq.values = pq.values[:0]
	pq.head = 0
}

// mark and rollback bracket a speculative read.
func (pq *ParameterQueue) mark() int {
	return len(pq.values)
}

func (pq *ParameterQueue) rollback(n int) {
	clear(pq.values[n:])
	pq.values = pq.values[:n]
	if pq.head > n {
		pq.head = n
	}
}
