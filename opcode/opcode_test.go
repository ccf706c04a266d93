package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMnemonicsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for op := HALT; op <= IRET; op++ {
		m := op.String()
		assert.NotEqual(t, "???", m, "opcode %d should have a mnemonic", op)
		assert.False(t, seen[m], "mnemonic %q reused for opcode %d", m, op)
		seen[m] = true
	}
}

func TestUnknownOpcodeStringsAsPlaceholder(t *testing.T) {
	assert.Equal(t, "???", Opcode(200).String())
}

func TestOperandSizes(t *testing.T) {
	cases := map[Opcode]int{
		HALT:  0,
		FETCH: 2,
		STORE: 2,
		LIT1:  1,
		LIT2:  2,
		LIT:   4,
		IDROP: 0,
		IADD:  0,
		JZ:    1,
		JNZ:   1,
		JMP:   1,
		ICALL: 2,
		IRET:  0,
	}
	for op, want := range cases {
		assert.Equal(t, want, op.OperandSize(), "opcode %s", op)
	}
}
