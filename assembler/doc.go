// Package assembler turns mipsim assembly source into machine words.
//
// The grammar is built from small matchers, each of which reads from a
// position in the source and returns the position after what it consumed,
// or the same position on failure. Matchers talk to each other only through
// a parameter queue, a label registry, a binary code writer and a message
// list, all owned by a single assembly run.
//
// Assembly takes two passes over the source. The first pass computes the
// address of every label with writes disabled. The second pass resolves
// every reference and writes the program, followed by the terminate word.
// Problems never stop a pass; they are collected as error messages, and any
// error leaves the target memory empty.
package assembler
