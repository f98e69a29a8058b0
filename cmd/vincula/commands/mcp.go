package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/54b3r/vincula-go/internal/logging"
	"github.com/54b3r/vincula-go/internal/mcp"
)

// NewMCPCmd constructs the `vincula mcp` command, which serves the engine
// as MCP tools over stdin/stdout.
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve vincula as an MCP server over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the
vincula_reply and vincula_search tools. Logs go to stderr.

Example client entry:
  {"command": "vincula", "args": ["mcp"], "env": {"VINCULA_DOCS_DIR": "/path/to/docs"}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logging.New()

			eng, err := buildEngine(ctx, log)
			if err != nil {
				return fmt.Errorf("mcp: %w", err)
			}

			log.Info("mcp server starting", "transport", "stdio", "chunks", eng.TotalChunks())
			if err := mcp.Run(ctx, eng, log); err != nil {
				return fmt.Errorf("mcp: %w", err)
			}
			return nil
		},
	}
}
