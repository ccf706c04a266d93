// Package ast implements the tinyc abstract syntax tree: a bounded arena
// of fixed-shape nodes (up to three child indices and one integer
// payload), owned by index rather than by pointer.
package ast

import "github.com/skx/tinyc/compileerr"

// Kind tags the shape and meaning of a Node.
type Kind int

// Node kinds, matching the data model 1:1.
const (
	VAR Kind = iota
	CST
	ADD
	SUB
	MUL
	DIV
	LT
	GT
	SET
	FUNC_DEF
	FUNC_CALL
	RET
	IF1
	IF2
	WHILE
	DO
	EMPTY
	SEQ
	EXPR
	PROG
)

// NoNode is the zero value of a node index, meaning "no child".
const NoNode = 0

// Node is a single AST record.  O1/O2/O3 are 1-based indices into the
// owning Pool, or NoNode.  Payload's meaning depends on Kind: a symbol
// index for VAR/FUNC_DEF/FUNC_CALL, a literal value for CST, and unused
// otherwise (a SET node's target index is the Payload of its VAR child
// in O1).
type Node struct {
	Kind    Kind
	O1, O2, O3 int
	Payload int
}

// DefaultCapacity is the arena size used when no explicit capacity is
// given.
const DefaultCapacity = 4096

// Pool is a bounded arena of nodes, indexed from 1.
type Pool struct {
	capacity int
	nodes    []Node
}

// NewPool returns an empty pool with the given capacity.  A capacity of
// zero or less falls back to DefaultCapacity.
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{capacity: capacity}
}

// New allocates a node of the given kind with up to three children and a
// payload, returning its 1-based index.  It returns a
// *compileerr.ResourceError if the pool is exhausted.
func (p *Pool) New(kind Kind, o1, o2, o3, payload int) (int, error) {
	if len(p.nodes) >= p.capacity {
		return 0, &compileerr.ResourceError{Resource: "AST pool", Capacity: p.capacity}
	}
	p.nodes = append(p.nodes, Node{Kind: kind, O1: o1, O2: o2, O3: o3, Payload: payload})
	return len(p.nodes), nil
}

// Get returns the node at the given 1-based index.  NoNode (0) is never a
// valid argument; callers must check against NoNode before calling Get.
func (p *Pool) Get(index int) *Node {
	return &p.nodes[index-1]
}

// Len returns the number of nodes allocated so far.
func (p *Pool) Len() int {
	return len(p.nodes)
}
