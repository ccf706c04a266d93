// Package cmd implements the tinyc command-line driver: parse flags,
// read a program from a file or standard input, compile it, disassemble
// it, and - unless told otherwise - run it.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skx/tinyc/compileerr"
	"github.com/skx/tinyc/compiler"
	"github.com/skx/tinyc/config"
	"github.com/skx/tinyc/disasm"
	"github.com/skx/tinyc/logging"
	"github.com/skx/tinyc/vm"
)

var (
	listPath   string
	verbose    bool
	noRun      bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:          "tinyc [file]",
	Short:        "A tiny C-like language compiler and VM",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&listPath, "list", "list.txt", "disassembly output path")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "raise the log level to debug")
	rootCmd.Flags().BoolVar(&noRun, "no-run", false, "compile and disassemble only, skip VM execution")
	rootCmd.Flags().StringVar(&configPath, "config", "", "override the config file search path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(_ *cobra.Command, args []string) error {
	logging.SetVerbose(verbose)

	source, dir, err := readSource(args)
	if err != nil {
		return err
	}

	cfg := config.Load(resolveConfigPath(dir))

	c := compiler.New(source, cfg.SymbolCapacity, cfg.ASTPoolCapacity, cfg.CodeCapacity)
	c.SetDebug(verbose)

	if err := c.Compile(); err != nil {
		return diagnose(err)
	}

	fmt.Printf("(nodes: %d, code: %d bytes)\n", c.Nodes, len(c.Code))

	listing := disasm.Text(c.Code, c.Symbols())
	if err := os.WriteFile(listPath, []byte(listing), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", listPath, err)
	}

	if !noRun {
		machine := vm.New(c.Code, c.Symbols())
		if verbose {
			machine.SetDebug(logging.Debugf)
		}
		if err := machine.Run(); err != nil {
			return fmt.Errorf("running compiled program: %w", err)
		}

		for _, entry := range c.Symbols().All() {
			fmt.Printf("%s %s: %d\n", entry.Kind, entry.Name, entry.Value)
		}
	}

	logging.Sync()
	return nil
}

// readSource reads the program text either from the single positional
// file argument or from standard input, and reports the directory it
// was found in (used to locate a sibling config file).
func readSource(args []string) (source, dir string, err error) {
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], readErr)
		}
		return string(data), filepath.Dir(args[0]), nil
	}

	data, readErr := io.ReadAll(os.Stdin)
	if readErr != nil {
		return "", "", fmt.Errorf("reading standard input: %w", readErr)
	}
	return string(data), ".", nil
}

func resolveConfigPath(dir string) string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(dir, config.FileName)
}

// diagnose selects the diagnostic prefix per the three fatal error
// taxonomies and formats a single-line message.
func diagnose(err error) error {
	var lexErr *compileerr.LexError
	var synErr *compileerr.SyntaxError
	var resErr *compileerr.ResourceError

	switch {
	case errors.As(err, &lexErr):
		return fmt.Errorf("lex error: %w", err)
	case errors.As(err, &synErr):
		return fmt.Errorf("syntax error: %w", err)
	case errors.As(err, &resErr):
		return fmt.Errorf("resource error: %w", err)
	default:
		return err
	}
}
