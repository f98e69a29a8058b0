package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/54b3r/vincula-go/internal/version"
)

// NewVersionCmd constructs the `vincula version` subcommand.
// It prints the binary version, git commit, and build date injected at
// build time via -ldflags. Falls back to "dev"/"unknown" for local builds.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vincula version, git commit, and build date",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vincula %s\n", version.String())
		},
	}
}
