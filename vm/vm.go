// Package vm implements the tinyc stack machine: a single dispatch loop
// over the byte-coded instruction stream the code generator produces, an
// operand stack, a return-address stack, and symbol-table-backed
// variable storage.
package vm

import (
	"github.com/skx/tinyc/opcode"
	"github.com/skx/tinyc/stack"
	"github.com/skx/tinyc/symtab"
)

// VM holds the machine state for one run of a compiled program.
type VM struct {
	code    []byte
	symbols *symtab.Table
	pc      int

	operand *stack.Stack
	returns *stack.Stack

	debug func(format string, args ...interface{})
}

// New returns a VM ready to execute code, resolving FETCH/STORE/ICALL
// operands against symbols.
func New(code []byte, symbols *symtab.Table) *VM {
	return &VM{
		code:    code,
		symbols: symbols,
		operand: stack.New(),
		returns: stack.New(),
	}
}

// SetDebug installs a sink for trace lines (HALT, ICALL, IRET and taken
// jumps); a nil sink (the default) disables tracing entirely.
func (v *VM) SetDebug(fn func(format string, args ...interface{})) {
	v.debug = fn
}

func (v *VM) trace(format string, args ...interface{}) {
	if v.debug != nil {
		v.debug(format, args...)
	}
}

func f2(b []byte) int {
	return int(int16(uint16(b[0]) | uint16(b[1])<<8))
}

func u2(b []byte) int {
	return int(uint16(b[0]) | uint16(b[1])<<8)
}

func f4(b []byte) int {
	return int(int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24))
}

// Run executes the loaded code from offset 0 until HALT, or until IRET
// finds the return stack empty. Operand-stack underflow is returned as an
// error. Division by zero and an out-of-range jump are not guarded
// against; inputs that would trigger them are malformed and the VM's
// behavior on them is unspecified.
func (v *VM) Run() error {
	for {
		op := opcode.Opcode(v.code[v.pc])
		v.pc++

		switch op {
		case opcode.HALT:
			v.trace("halt")
			return nil

		case opcode.FETCH:
			idx := u2(v.code[v.pc:])
			v.pc += 2
			v.operand.Push(v.symbols.Get(idx).Value)

		case opcode.STORE:
			idx := u2(v.code[v.pc:])
			v.pc += 2
			top, err := v.operand.Top()
			if err != nil {
				return err
			}
			v.symbols.Get(idx).Value = top

		case opcode.LIT1:
			v.operand.Push(int(int8(v.code[v.pc])))
			v.pc++

		case opcode.LIT2:
			v.operand.Push(f2(v.code[v.pc:]))
			v.pc += 2

		case opcode.LIT:
			v.operand.Push(f4(v.code[v.pc:]))
			v.pc += 4

		case opcode.IDROP:
			if _, err := v.operand.Pop(); err != nil {
				return err
			}

		case opcode.IADD, opcode.ISUB, opcode.IMUL, opcode.IDIV, opcode.ILT, opcode.IGT:
			rhs, err := v.operand.Pop()
			if err != nil {
				return err
			}
			lhs, err := v.operand.Top()
			if err != nil {
				return err
			}
			if err := v.operand.Set(binOp(op, lhs, rhs)); err != nil {
				return err
			}

		case opcode.JMP:
			slot := v.pc
			v.pc = slot + int(int8(v.code[slot]))
			v.trace("jmp -> %d", v.pc)

		case opcode.JZ, opcode.JNZ:
			slot := v.pc
			cond, err := v.operand.Pop()
			if err != nil {
				return err
			}
			taken := cond == 0
			if op == opcode.JNZ {
				taken = cond != 0
			}
			if taken {
				v.pc = slot + int(int8(v.code[slot]))
				v.trace("%s taken -> %d", op, v.pc)
			} else {
				v.pc = slot + 1
			}

		case opcode.ICALL:
			idx := u2(v.code[v.pc:])
			ret := v.pc + 2
			v.returns.Push(ret)
			v.trace("call %s -> %d", v.symbols.Get(idx).Name, v.symbols.Get(idx).Value)
			v.pc = v.symbols.Get(idx).Value

		case opcode.IRET:
			if v.returns.Empty() {
				v.trace("ret (top-level)")
				return nil
			}
			addr, err := v.returns.Pop()
			if err != nil {
				return err
			}
			v.trace("ret -> %d", addr)
			v.pc = addr

		default:
			return nil
		}
	}
}

func binOp(op opcode.Opcode, lhs, rhs int) int {
	switch op {
	case opcode.IADD:
		return lhs + rhs
	case opcode.ISUB:
		return lhs - rhs
	case opcode.IMUL:
		return lhs * rhs
	case opcode.IDIV:
		return lhs / rhs
	case opcode.ILT:
		if lhs < rhs {
			return 1
		}
		return 0
	case opcode.IGT:
		if lhs > rhs {
			return 1
		}
		return 0
	}
	return 0
}
