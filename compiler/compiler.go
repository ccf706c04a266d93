// Package compiler glues the lexer, parser, and code generator into the
// three-step pipeline a caller actually wants: tokenize (via the parser,
// which drives the lexer itself), build the AST, and emit code.
package compiler

import (
	"github.com/skx/tinyc/ast"
	"github.com/skx/tinyc/codegen"
	"github.com/skx/tinyc/lexer"
	"github.com/skx/tinyc/logging"
	"github.com/skx/tinyc/parser"
	"github.com/skx/tinyc/symtab"
)

// Compiler holds our object-state: the resource-pool capacities it was
// configured with, the pools/table built from them, and the debug flag
// controlling whether the generator and VM emit trace output.
type Compiler struct {
	// source holds the program text being compiled.
	source string

	// debug records the last SetDebug value; SetDebug also sets the
	// logging package's level, so the generator's trace calls are
	// visible. The level stays set after Compile returns.
	debug bool

	symbolCapacity int
	astCapacity    int
	codeCapacity   int

	pool    *ast.Pool
	symbols *symtab.Table

	// Nodes is the number of AST nodes allocated while compiling,
	// populated once Compile returns successfully.
	Nodes int

	// Code is the emitted byte buffer, populated once Compile returns
	// successfully.
	Code []byte
}

// New creates a new compiler for the given source text, with resource
// capacities of zero meaning "use the package defaults".
func New(source string, symbolCapacity, astCapacity, codeCapacity int) *Compiler {
	return &Compiler{
		source:         source,
		symbolCapacity: symbolCapacity,
		astCapacity:    astCapacity,
		codeCapacity:   codeCapacity,
	}
}

// SetDebug changes the debug-flag for our output.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
	logging.SetVerbose(val)
}

// Symbols returns the symbol table built while compiling; only
// meaningful once Compile has returned successfully.
func (c *Compiler) Symbols() *symtab.Table {
	return c.symbols
}

// Compile parses the source and lowers it to a byte-coded instruction
// stream: tokenize (inside the parser), build the AST, then generate.
func (c *Compiler) Compile() error {
	c.pool = ast.NewPool(c.astCapacity)
	c.symbols = symtab.New(c.symbolCapacity)

	lex := lexer.New(c.source)
	p := parser.New(lex, c.pool, c.symbols)

	progIdx, err := p.Parse()
	if err != nil {
		return err
	}

	gen := codegen.New(c.pool, c.symbols, c.codeCapacity)
	if err := gen.Compile(progIdx); err != nil {
		return err
	}

	c.Nodes = c.pool.Len()
	c.Code = gen.Code()
	return nil
}
