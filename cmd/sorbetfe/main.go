// Command sorbetfe desugars a list of Ruby source files into the typed
// compiler-frontend IR (C1-C8) and reports any diagnostics. File I/O and flag
// parsing only; the frontend itself lives in core/ast/parser/desugar.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
