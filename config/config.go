// Package config loads the handful of implementation-parameter knobs the
// rest of tinyc leaves open: symbol-table, AST-pool, and code-buffer
// capacities. A missing or unreadable file is not an error - it just
// means the built-in defaults apply.
package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/skx/tinyc/ast"
	"github.com/skx/tinyc/codegen"
	"github.com/skx/tinyc/symtab"
)

// FileName is the config file the driver looks for next to the input
// program, or in the current directory when reading from standard input.
const FileName = "tinyc.yaml"

// Config holds the resource-pool capacities. Zero values mean "use the
// package default" at the point of consumption.
type Config struct {
	SymbolCapacity  int `yaml:"symbolCapacity"`
	ASTPoolCapacity int `yaml:"astPoolCapacity"`
	CodeCapacity    int `yaml:"codeCapacity"`
}

// Default returns the built-in capacities, used when no config file is
// found or it fails to parse.
func Default() Config {
	return Config{
		SymbolCapacity:  symtab.DefaultCapacity,
		ASTPoolCapacity: ast.DefaultCapacity,
		CodeCapacity:    codegen.DefaultCapacity,
	}
}

// Load reads and parses path, falling back to Default() if the file
// doesn't exist, can't be read, or fails to parse - per design, a
// missing config file is never a fatal error.
func Load(path string) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg
	}

	if parsed.SymbolCapacity > 0 {
		cfg.SymbolCapacity = parsed.SymbolCapacity
	}
	if parsed.ASTPoolCapacity > 0 {
		cfg.ASTPoolCapacity = parsed.ASTPoolCapacity
	}
	if parsed.CodeCapacity > 0 {
		cfg.CodeCapacity = parsed.CodeCapacity
	}
	return cfg
}
