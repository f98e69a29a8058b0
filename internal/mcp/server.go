package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/54b3r/vincula-go/internal/version"
)

const instructions = `vincula answers relationship and communication questions from a local document corpus.
Use vincula_reply to get a structured answer (assessment, explanation, resolution) in the user's language.
Use vincula_search to inspect the raw passages the answer would draw on.`

// NewServer builds an MCP server with the vincula tools registered.
func NewServer(e Engine, logger *slog.Logger) *mcp.Server {
	h := NewHandlers(e, logger)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "vincula",
		Version: version.Version,
	}, &mcp.ServerOptions{
		Instructions: instructions,
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolReply,
		Description: "Answer a message. Self-harm language gets a safety reply instead of retrieval.",
	}, h.Reply)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearch,
		Description: "Search a language index and return the best matching passages with scores.",
	}, h.Search)

	return server
}

// Run serves the tools over stdin/stdout until ctx is cancelled or the client
// disconnects.
func Run(ctx context.Context, e Engine, logger *slog.Logger) error {
	return NewServer(e, logger).Run(ctx, &mcp.StdioTransport{})
}
