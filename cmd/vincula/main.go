// Command vincula answers relationship and communication questions from a
// local, per-language document corpus. It provides a CLI (via Cobra), an
// HTTP server and an MCP stdio server over the same engine.
package main

import (
	"fmt"
	"os"

	"github.com/54b3r/vincula-go/cmd/vincula/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
