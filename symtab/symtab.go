// Package symtab implements the flat, append-only symbol table shared by
// the parser, the code generator, and the VM.
//
// Entries are 1-indexed; index 0 means "not found".  A Var entry's Value
// field doubles as the VM's live storage slot for that variable (the VM
// mutates table entries directly, per the fused storage model described
// in the design notes); a Func entry's Value is the code-buffer offset of
// its first emitted instruction.
package symtab

import "github.com/skx/tinyc/compileerr"

// Kind distinguishes a variable entry from a function entry.
type Kind int

const (
	// Var marks a variable entry.
	Var Kind = iota
	// Func marks a function entry.
	Func
)

func (k Kind) String() string {
	if k == Func {
		return "func"
	}
	return "var"
}

// MaxNameLen is the longest identifier name a symbol-table entry will
// store, matching the 15-character limit of the data model.
const MaxNameLen = 15

// Entry is a single named, kind-tagged, valued symbol.
type Entry struct {
	Kind  Kind
	Value int
	Name  string
}

// DefaultCapacity is the table size used when no explicit capacity is
// supplied; it satisfies the "at least 256 entries" requirement.
const DefaultCapacity = 256

// Table is a flat, append-only directory of symbols, indexed from 1.
type Table struct {
	capacity int
	entries  []Entry
}

// New returns an empty table with the given capacity.  A capacity of zero
// or less falls back to DefaultCapacity.
func New(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table{capacity: capacity}
}

// Len returns the number of entries currently stored.
func (t *Table) Len() int {
	return len(t.entries)
}

// Find performs a newest-to-oldest linear scan for (name, kind), returning
// its 1-based index, or 0 if no such entry exists. name is truncated to
// MaxNameLen first, exactly as Insert stores it.
func (t *Table) Find(name string, kind Kind) int {
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if e.Kind == kind && e.Name == name {
			return i + 1
		}
	}
	return 0
}

// Insert appends a new entry and returns its 1-based index.  It returns a
// *compileerr.ResourceError if the table is already at capacity. name is
// truncated to MaxNameLen, matching the data model's name-length limit.
func (t *Table) Insert(name string, kind Kind) (int, error) {
	if len(t.entries) >= t.capacity {
		return 0, &compileerr.ResourceError{Resource: "symbol table", Capacity: t.capacity}
	}
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	t.entries = append(t.entries, Entry{Kind: kind, Name: name})
	return len(t.entries), nil
}

// Get returns the entry at the given 1-based index.  It panics on an
// out-of-range index; callers are expected to only ever pass indices
// obtained from Find/Insert or from AST payloads produced by the parser.
func (t *Table) Get(index int) *Entry {
	return &t.entries[index-1]
}

// All returns the entries in insertion order, for diagnostics/dumping.
func (t *Table) All() []Entry {
	return t.entries
}
