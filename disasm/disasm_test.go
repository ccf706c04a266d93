package disasm

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/skx/tinyc/ast"
	"github.com/skx/tinyc/codegen"
	"github.com/skx/tinyc/lexer"
	"github.com/skx/tinyc/parser"
	"github.com/skx/tinyc/symtab"
)

func compile(t *testing.T, src string) ([]byte, *symtab.Table) {
	t.Helper()
	pool := ast.NewPool(0)
	symbols := symtab.New(0)
	p := parser.New(lexer.New(src), pool, symbols)
	progIdx, err := p.Parse()
	require.NoError(t, err)

	gen := codegen.New(pool, symbols, 0)
	require.NoError(t, gen.Compile(progIdx))
	return gen.Code(), symbols
}

func TestHeaderReportsMainOffset(t *testing.T) {
	code, symbols := compile(t, "void main() { a = 1; }")
	lines := Lines(code, symbols)
	require.NotEmpty(t, lines)
	require.Contains(t, lines[0], "main() is at")
}

func TestHeaderReportsNoMain(t *testing.T) {
	code, symbols := compile(t, "void other() { return; }")
	lines := Lines(code, symbols)
	require.NotEmpty(t, lines)
	require.Equal(t, "; there is no main() function", lines[0])
}

func TestListingShowsMnemonicsOfCompiledProgram(t *testing.T) {
	code, symbols := compile(t, `void inc() { c = c + 1; return; }
void main() {
  a = 1 + 2 * 3;
  i = 0;
  while (i < 5) { i = i + 1; }
  if (a > 5) { inc(); } else { i = i - 1; }
  do { a = a - 1; } while (a > 0);
}`)

	lines := Lines(code, symbols)
	seen := map[string]bool{}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		require.GreaterOrEqual(t, len(fields), 3)
		seen[fields[2]] = true
	}
	for _, mnemonic := range []string{"jmp", "fetch", "store", "lit1", "add", "sub", "mul", "lt", "gt", "jz", "drop", "call", "ret", "halt"} {
		assert := require.New(t)
		assert.True(seen[mnemonic], "expected mnemonic %q to appear in listing", mnemonic)
	}
}

func TestListingSnapshots(t *testing.T) {
	scenarios := map[string]string{
		"S1_precedence": "void main() { a = 1 + 2 * 3; }",
		"S2_while":      "void main() { i = 0; s = 0; while (i < 5) { s = s + i; i = i + 1; } }",
		"S3_do_while":   "void main() { n = 0; do { n = n + 1; } while (n < 3); }",
		"S4_if_else":    "void main() { x = 7; if (x > 5) y = 1; else y = 2; }",
		"S5_call":       "void inc() { c = c + 1; return; } void main() { c = 0; inc(); inc(); }",
		"S6_literals":   "void main() { a = 100; b = 1000; c = 100000; }",
	}
	for name, src := range scenarios {
		code, symbols := compile(t, src)
		snaps.MatchSnapshot(t, name, Text(code, symbols))
	}
}
