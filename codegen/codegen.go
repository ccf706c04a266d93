// Package codegen lowers a tinyc AST to the flat byte-coded instruction
// stream the VM executes: a tree-walking, post-order emitter with
// single-byte-signed-displacement jump patching and a three-tier integer
// literal encoding.
package codegen

import (
	"github.com/skx/tinyc/ast"
	"github.com/skx/tinyc/compileerr"
	"github.com/skx/tinyc/logging"
	"github.com/skx/tinyc/opcode"
	"github.com/skx/tinyc/symtab"
)

// DefaultCapacity is the code-buffer size used when no explicit capacity
// is given.
const DefaultCapacity = 65536

// Generator walks an AST and emits a byte-coded instruction stream.
type Generator struct {
	pool     *ast.Pool
	symbols  *symtab.Table
	capacity int
	code     []byte
}

// New returns a Generator that lowers nodes from pool, resolving symbol
// indices against symbols, into a buffer bounded by capacity (falling
// back to DefaultCapacity when capacity is zero or less).
func New(pool *ast.Pool, symbols *symtab.Table, capacity int) *Generator {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Generator{pool: pool, symbols: symbols, capacity: capacity}
}

// Here returns the current write offset - the offset the next emitted
// byte will land at.
func (g *Generator) Here() int {
	return len(g.code)
}

// Code returns the emitted byte buffer. It is only meaningful once
// Compile has returned successfully.
func (g *Generator) Code() []byte {
	return g.code
}

func (g *Generator) ensure(n int) error {
	if len(g.code)+n > g.capacity {
		return &compileerr.ResourceError{Resource: "code buffer", Capacity: g.capacity}
	}
	return nil
}

func (g *Generator) emit1(b byte) error {
	if err := g.ensure(1); err != nil {
		return err
	}
	g.code = append(g.code, b)
	return nil
}

func (g *Generator) emitOp(op opcode.Opcode) error {
	return g.emit1(byte(op))
}

// emit2 writes a 16-bit value in little-endian order.
func (g *Generator) emit2(v int) error {
	if err := g.ensure(2); err != nil {
		return err
	}
	g.code = append(g.code, byte(v), byte(v>>8))
	return nil
}

// emit4 writes a 32-bit value in little-endian order.
func (g *Generator) emit4(v int) error {
	if err := g.ensure(4); err != nil {
		return err
	}
	g.code = append(g.code, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return nil
}

// hole reserves a one-byte slot, to be filled in later by patch, and
// returns its offset.
func (g *Generator) hole() (int, error) {
	slot := len(g.code)
	if err := g.emit1(0); err != nil {
		return 0, err
	}
	return slot, nil
}

// patch writes the signed displacement from slot to target into the byte
// reserved at slot. Overflow of the ±127 range is unchecked, per the
// design's known limitation.
func (g *Generator) patch(slot, target int) {
	g.code[slot] = byte(int8(target - slot))
	logging.Debugf("patch hole at %d -> %d", slot, target)
}

// Compile lowers the whole program: a two-byte "JMP 0" prologue, the
// program body, and a patch of the prologue to jump into main() - or, if
// main() is undefined, an overwrite of the prologue with a bare HALT.
func (g *Generator) Compile(progNode int) error {
	if err := g.emitOp(opcode.JMP); err != nil {
		return err
	}
	prologueSlot, err := g.hole()
	if err != nil {
		return err
	}

	if err := g.emit(progNode); err != nil {
		return err
	}

	if mainIdx := g.symbols.Find("main", symtab.Func); mainIdx != 0 {
		g.patch(prologueSlot, g.symbols.Get(mainIdx).Value)
	} else {
		g.code[0] = byte(opcode.HALT)
	}
	return nil
}

// emit lowers a single AST node, recursing into its children in
// post-order (except where control flow requires otherwise).
func (g *Generator) emit(nodeIdx int) error {
	if nodeIdx == ast.NoNode {
		return nil
	}
	n := g.pool.Get(nodeIdx)

	switch n.Kind {
	case ast.CST:
		return g.emitConst(n.Payload)

	case ast.VAR:
		if err := g.emitOp(opcode.FETCH); err != nil {
			return err
		}
		return g.emit2(n.Payload)

	case ast.SET:
		if err := g.emit(n.O2); err != nil {
			return err
		}
		if err := g.emitOp(opcode.STORE); err != nil {
			return err
		}
		return g.emit2(g.pool.Get(n.O1).Payload)

	case ast.ADD, ast.SUB, ast.MUL, ast.DIV, ast.LT, ast.GT:
		if err := g.emit(n.O1); err != nil {
			return err
		}
		if err := g.emit(n.O2); err != nil {
			return err
		}
		return g.emitOp(binOp[n.Kind])

	case ast.IF1:
		if err := g.emit(n.O1); err != nil {
			return err
		}
		if err := g.emitOp(opcode.JZ); err != nil {
			return err
		}
		p1, err := g.hole()
		if err != nil {
			return err
		}
		if err := g.emit(n.O2); err != nil {
			return err
		}
		g.patch(p1, g.Here())
		return nil

	case ast.IF2:
		if err := g.emit(n.O1); err != nil {
			return err
		}
		if err := g.emitOp(opcode.JZ); err != nil {
			return err
		}
		p1, err := g.hole()
		if err != nil {
			return err
		}
		if err := g.emit(n.O2); err != nil {
			return err
		}
		if err := g.emitOp(opcode.JMP); err != nil {
			return err
		}
		p2, err := g.hole()
		if err != nil {
			return err
		}
		g.patch(p1, g.Here())
		if err := g.emit(n.O3); err != nil {
			return err
		}
		g.patch(p2, g.Here())
		return nil

	case ast.WHILE:
		p1 := g.Here()
		if err := g.emit(n.O1); err != nil {
			return err
		}
		if err := g.emitOp(opcode.JZ); err != nil {
			return err
		}
		p2, err := g.hole()
		if err != nil {
			return err
		}
		if err := g.emit(n.O2); err != nil {
			return err
		}
		if err := g.emitOp(opcode.JMP); err != nil {
			return err
		}
		p3, err := g.hole()
		if err != nil {
			return err
		}
		g.patch(p3, p1)
		g.patch(p2, g.Here())
		return nil

	case ast.DO:
		p1 := g.Here()
		if err := g.emit(n.O1); err != nil {
			return err
		}
		if err := g.emit(n.O2); err != nil {
			return err
		}
		if err := g.emitOp(opcode.JNZ); err != nil {
			return err
		}
		p2, err := g.hole()
		if err != nil {
			return err
		}
		g.patch(p2, p1)
		return nil

	case ast.EMPTY:
		return nil

	case ast.SEQ:
		if err := g.emit(n.O1); err != nil {
			return err
		}
		return g.emit(n.O2)

	case ast.EXPR:
		if err := g.emit(n.O1); err != nil {
			return err
		}
		return g.emitOp(opcode.IDROP)

	case ast.PROG:
		if err := g.emit(n.O1); err != nil {
			return err
		}
		return g.emitOp(opcode.HALT)

	case ast.FUNC_DEF:
		g.symbols.Get(n.Payload).Value = g.Here()
		if err := g.emit(n.O1); err != nil {
			return err
		}
		return g.emitOp(opcode.IRET)

	case ast.FUNC_CALL:
		if err := g.emitOp(opcode.ICALL); err != nil {
			return err
		}
		return g.emit2(n.Payload)

	case ast.RET:
		return g.emitOp(opcode.IRET)
	}
	return nil
}

var binOp = map[ast.Kind]opcode.Opcode{
	ast.ADD: opcode.IADD,
	ast.SUB: opcode.ISUB,
	ast.MUL: opcode.IMUL,
	ast.DIV: opcode.IDIV,
	ast.LT:  opcode.ILT,
	ast.GT:  opcode.IGT,
}

// emitConst selects the shortest literal tier - LIT1, LIT2, or LIT - whose
// range contains v, and emits it.
func (g *Generator) emitConst(v int) error {
	switch {
	case v >= 0 && v <= 127:
		logging.Debugf("literal %d emitted as lit1", v)
		if err := g.emitOp(opcode.LIT1); err != nil {
			return err
		}
		return g.emit1(byte(v))
	case v >= 128 && v <= 32767:
		logging.Debugf("literal %d emitted as lit2", v)
		if err := g.emitOp(opcode.LIT2); err != nil {
			return err
		}
		return g.emit2(v)
	default:
		logging.Debugf("literal %d emitted as lit", v)
		if err := g.emitOp(opcode.LIT); err != nil {
			return err
		}
		return g.emit4(v)
	}
}
