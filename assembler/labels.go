package assembler

import (
	"iter"
	"maps"
)

// PendingReference is a label reference seen before the label was defined.
type PendingReference struct {
	Name  string            // Label name.
	Start int               // First source index of the reference.
	End   int               // Source index just past the reference.
	Patch func(addr uint32) // Applied once the label resolves.
}

// LabelRegistry maps label names to addresses for one assembly run.
type LabelRegistry struct {
	labels   map[string]uint32  // Label addresses.
	pending  []PendingReference // Unresolved references.
	trailing []string           // Labels defined since the last write.
}

// NewLabelRegistry returns an empty registry.
func NewLabelRegistry() *LabelRegistry {
	return &LabelRegistry{
		labels: map[string]uint32{},
	}
}

// Define records name at addr. ok is false, and the first definition is
// kept, if name was already defined.
func (lr *LabelRegistry) Define(name string, addr uint32) (ok bool) {
	if _, found := lr.labels[name]; found {
		return false
	}
	lr.labels[name] = addr
	lr.trailing = append(lr.trailing, name)
	return true
}

// Lookup returns the address of a label.
func (lr *LabelRegistry) Lookup(name string) (addr uint32, ok bool) {
	addr, ok = lr.labels[name]
	return
}

// Resolve applies patch to the address of name now if it is known, or
// records a pending reference otherwise.
func (lr *LabelRegistry) Resolve(name string, start, end int, patch func(addr uint32)) (ok bool) {
	addr, ok := lr.labels[name]
	if ok {
		patch(addr)
		return
	}
	lr.pending = append(lr.pending, PendingReference{Name: name, Start: start, End: end, Patch: patch})
	return
}

// Settle applies the pending references whose labels are now defined, and
// returns the ones that are still missing. The pending list is emptied.
func (lr *LabelRegistry) Settle() (missing []PendingReference) {
	for _, ref := range lr.pending {
		addr, ok := lr.labels[ref.Name]
		if ok {
			ref.Patch(addr)
			continue
		}
		missing = append(missing, ref)
	}
	lr.pending = nil
	return
}

// Realign moves labels defined at from, since the last write, to to.
// A word write aligns the address after the labels in front of it were
// defined; the labels follow the word.
func (lr *LabelRegistry) Realign(from, to uint32) {
	for _, name := range lr.trailing {
		if lr.labels[name] == from {
			lr.labels[name] = to
		}
	}
}

// Written marks the end of the labels that precede a write.
func (lr *LabelRegistry) Written() {
	lr.trailing = lr.trailing[:0]
}

// All returns every defined label.
func (lr *LabelRegistry) All() iter.Seq2[string, uint32] {
	return maps.All(lr.labels)
}

// Len is the number of defined labels.
func (lr *LabelRegistry) Len() int {
	return len(lr.labels)
}

func (lr *LabelRegistry) mark() int {
	return len(lr.pending)
}

func (lr *LabelRegistry) rollback(n int) {
	lr.pending = lr.pending[:n]
}
