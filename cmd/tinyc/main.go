// This is the main-driver for our compiler.

package main

import (
	"fmt"
	"os"

	"github.com/skx/tinyc/cmd/tinyc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
