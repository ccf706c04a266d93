// Package disasm renders a compiled code buffer back to a human-readable
// instruction listing: one line per instruction, with FETCH/STORE/ICALL
// operands resolved to symbol names where possible.
package disasm

import (
	"fmt"
	"strings"

	"github.com/skx/tinyc/opcode"
	"github.com/skx/tinyc/symtab"
)

func f2(b []byte) int {
	return int(int16(uint16(b[0]) | uint16(b[1])<<8))
}

func u2(b []byte) int {
	return int(uint16(b[0]) | uint16(b[1])<<8)
}

func f4(b []byte) int {
	return int(int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24))
}

// Lines renders code to a disassembly listing: a header line describing
// where (or whether) main() was found, followed by one line per
// instruction.
func Lines(code []byte, symbols *symtab.Table) []string {
	lines := make([]string, 0, len(code)+1)
	lines = append(lines, header(code, symbols))

	for pc := 0; pc < len(code); {
		op := opcode.Opcode(code[pc])
		operandStart := pc + 1
		size := op.OperandSize()

		line := fmt.Sprintf("%5d  %02x  %-6s", pc, byte(op), op.String())
		if size > 0 && operandStart+size <= len(code) {
			line += " " + operand(op, code[operandStart:operandStart+size], operandStart, symbols)
		}
		lines = append(lines, line)

		pc = operandStart + size
	}
	return lines
}

// header renders the "main() is at N" / "there is no main() function"
// line that always leads a listing: a JMP opcode at offset 0 means a
// main() was found and patched in, any other opcode (HALT when absent)
// means there was none.
func header(code []byte, symbols *symtab.Table) string {
	if len(code) >= 2 && opcode.Opcode(code[0]) == opcode.JMP {
		if idx := symbols.Find("main", symtab.Func); idx != 0 {
			return fmt.Sprintf("; main() is at %d", symbols.Get(idx).Value)
		}
	}
	return "; there is no main() function"
}

func operand(op opcode.Opcode, b []byte, pos int, symbols *symtab.Table) string {
	switch op {
	case opcode.FETCH, opcode.STORE:
		idx := u2(b)
		return symbolOperand(idx, symbols)
	case opcode.ICALL:
		idx := u2(b)
		return symbolOperand(idx, symbols)
	case opcode.LIT1:
		return fmt.Sprintf("%d", int8(b[0]))
	case opcode.LIT2:
		return fmt.Sprintf("%d", f2(b))
	case opcode.LIT:
		return fmt.Sprintf("%d", f4(b))
	case opcode.JZ, opcode.JNZ, opcode.JMP:
		return fmt.Sprintf("%d", pos+int(int8(b[0])))
	}
	return ""
}

// symbolOperand resolves idx to "name (idx)" when it falls within the
// live symbol table, or just the bare index otherwise - a defensive
// fallback for disassembling a buffer the table doesn't match.
func symbolOperand(idx int, symbols *symtab.Table) string {
	if idx >= 1 && idx <= symbols.Len() {
		return fmt.Sprintf("%s (%d)", symbols.Get(idx).Name, idx)
	}
	return fmt.Sprintf("%d", idx)
}

// Text joins Lines with newlines and a trailing newline, the form
// written verbatim to list.txt.
func Text(code []byte, symbols *symtab.Table) string {
	return strings.Join(Lines(code, symbols), "\n") + "\n"
}
