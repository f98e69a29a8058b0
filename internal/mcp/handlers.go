// Package mcp exposes the engine as Model Context Protocol tools over stdio,
// so an MCP client can ask for replies or raw retrieval results.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/retriever"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/54b3r/vincula-go/internal/rag"
	"github.com/54b3r/vincula-go/internal/reply"
)

// Tool names.
const (
	ToolReply  = "vincula_reply"
	ToolSearch = "vincula_search"
)

// ReplyArgs defines the arguments for the vincula_reply tool.
type ReplyArgs struct {
	Message string `json:"message" jsonschema:"the user's message, in any supported language"`
}

// SearchArgs defines the arguments for the vincula_search tool.
type SearchArgs struct {
	Query string `json:"query" jsonschema:"free-text search query"`
	Lang  string `json:"lang,omitempty" jsonschema:"language index to search (default: the detected language)"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of passages to return"`
}

// Engine is the subset of *engine.Engine the handlers use.
type Engine interface {
	Reply(message string) reply.Result
	DetectLanguage(message string) string
	Retriever() *rag.EinoRetriever
}

// Handlers wraps the engine and provides MCP tool handlers.
type Handlers struct {
	engine Engine
	logger *slog.Logger
}

// NewHandlers creates handlers for e.
func NewHandlers(e Engine, logger *slog.Logger) *Handlers {
	return &Handlers{engine: e, logger: logger}
}

// Reply handles the vincula_reply tool call. The first content block is the
// answer text, the second the full result as JSON.
func (h *Handlers) Reply(_ context.Context, _ *mcp.CallToolRequest, args ReplyArgs) (*mcp.CallToolResult, any, error) {
	msg := strings.TrimSpace(args.Message)
	if msg == "" {
		h.logger.Error("vincula_reply: message is required")
		return nil, nil, fmt.Errorf("message is required")
	}

	res := h.engine.Reply(msg)
	data, err := json.Marshal(res)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}

	h.logger.Info("vincula_reply: success",
		slog.String("lang", res.Lang),
		slog.String("domain", res.Domain),
		slog.Int("sources", len(res.Sources)),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: res.Answer},
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

// Search handles the vincula_search tool call through the eino retriever.
func (h *Handlers) Search(ctx context.Context, _ *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		h.logger.Error("vincula_search: query is required")
		return nil, nil, fmt.Errorf("query is required")
	}

	lang := strings.TrimSpace(args.Lang)
	if lang == "" {
		lang = h.engine.DetectLanguage(query)
	}
	opts := []retriever.Option{retriever.WithIndex(lang)}
	if args.TopK > 0 {
		opts = append(opts, retriever.WithTopK(args.TopK))
	}

	docs, err := h.engine.Retriever().Retrieve(ctx, query, opts...)
	if err != nil {
		h.logger.Error("vincula_search: failed", slog.String("lang", lang), slog.Any("error", err))
		return nil, nil, err
	}

	var sb strings.Builder
	if len(docs) == 0 {
		fmt.Fprintf(&sb, "No passages found in %q.", lang)
	}
	for i, d := range docs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[%d] %s (score %.3f)\n%s", i+1, d.MetaData[rag.MetaSource], d.Score(), d.Content)
	}

	h.logger.Info("vincula_search: success", slog.String("lang", lang), slog.Int("results", len(docs)))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: sb.String()}},
	}, nil, nil
}
