// Package cpu implements the processor core for the mipsim system.
//
// The CPU consists of a program counter (Pc), thirty-two 32-bit general
// purpose registers ($zero-$ra, with $zero hardwired to zero), the Hi/Lo
// multiply and divide result registers, and a sparse 4 GiB paged memory.
//
// Each cycle fetches a big-endian word at Pc, advances Pc by four, decodes
// the word into one of the R, I or J instruction formats and executes it.
// There is no branch delay slot. Execution stops when the fetch address lies
// on a page that was never touched, or when the terminate word is fetched.
package cpu
