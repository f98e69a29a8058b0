package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/54b3r/vincula-go/internal/engine"
	"github.com/54b3r/vincula-go/internal/logging"
	"github.com/54b3r/vincula-go/internal/reply"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"pt/ansiedade.md": "Ansiedade e comunicação no relacionamento",
		"en/jealousy.md":  "Jealousy shows up when trust is missing",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	e, err := engine.New(context.Background(), engine.DefaultSettings(root))
	require.NoError(t, err)
	return e
}

func textOf(t *testing.T, result *mcp.CallToolResult, i int) string {
	t.Helper()
	require.Greater(t, len(result.Content), i)
	tc, ok := result.Content[i].(*mcp.TextContent)
	require.True(t, ok, "content %d is %T", i, result.Content[i])
	return tc.Text
}

func TestReply_ReturnsAnswerAndJSON(t *testing.T) {
	t.Parallel()
	h := NewHandlers(newTestEngine(t), logging.Discard())

	result, _, err := h.Reply(context.Background(), nil, ReplyArgs{Message: "como lidar com ansiedade no relacionamento"})
	require.NoError(t, err)
	require.Len(t, result.Content, 2)

	answer := textOf(t, result, 0)
	assert.Contains(t, answer, "- Ansiedade e comunicação no relacionamento...")

	var got reply.Result
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result, 1)), &got))
	assert.Equal(t, "pt", got.Lang)
	assert.Equal(t, reply.DomainGeneral, got.Domain)
	assert.Equal(t, answer, got.Answer)
	require.Len(t, got.Sources, 1)
	assert.Equal(t, "pt/ansiedade.md", got.Sources[0].Source)
}

func TestReply_SafetyMessage(t *testing.T) {
	t.Parallel()
	h := NewHandlers(newTestEngine(t), logging.Discard())

	result, _, err := h.Reply(context.Background(), nil, ReplyArgs{Message: "me quero matar"})
	require.NoError(t, err)
	assert.Equal(t, reply.DefaultTemplates()["pt"].SafetyMessage, textOf(t, result, 0))
	assert.Contains(t, textOf(t, result, 1), `"domain":"safety"`)
	assert.Contains(t, textOf(t, result, 1), `"sources":[]`)
}

func TestReply_EmptyMessage(t *testing.T) {
	t.Parallel()
	h := NewHandlers(newTestEngine(t), logging.Discard())

	for _, msg := range []string{"", "   \n"} {
		result, _, err := h.Reply(context.Background(), nil, ReplyArgs{Message: msg})
		assert.Error(t, err)
		assert.Nil(t, result)
	}
}

func TestSearch_ExplicitLanguage(t *testing.T) {
	t.Parallel()
	h := NewHandlers(newTestEngine(t), logging.Discard())

	result, _, err := h.Search(context.Background(), nil, SearchArgs{Query: "jealousy trust", Lang: "en", TopK: 1})
	require.NoError(t, err)
	text := textOf(t, result, 0)
	assert.Contains(t, text, "[1] en/jealousy.md (score ")
	assert.Contains(t, text, "Jealousy shows up when trust is missing")
}

func TestSearch_DetectsLanguage(t *testing.T) {
	t.Parallel()
	h := NewHandlers(newTestEngine(t), logging.Discard())

	result, _, err := h.Search(context.Background(), nil, SearchArgs{Query: "ansiedade no relacionamento"})
	require.NoError(t, err)
	assert.Contains(t, textOf(t, result, 0), "pt/ansiedade.md")
}

func TestSearch_NoResults(t *testing.T) {
	t.Parallel()
	h := NewHandlers(newTestEngine(t), logging.Discard())

	result, _, err := h.Search(context.Background(), nil, SearchArgs{Query: "zzz", Lang: "fr"})
	require.NoError(t, err)
	assert.Equal(t, `No passages found in "fr".`, textOf(t, result, 0))
}

func TestSearch_Errors(t *testing.T) {
	t.Parallel()
	h := NewHandlers(newTestEngine(t), logging.Discard())

	_, _, err := h.Search(context.Background(), nil, SearchArgs{Query: " "})
	assert.Error(t, err)

	_, _, err = h.Search(context.Background(), nil, SearchArgs{Query: "x", Lang: "xx"})
	assert.Error(t, err)
}

func TestNewServer_InMemoryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := NewServer(newTestEngine(t), logging.Discard())

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{ToolReply, ToolSearch}, names)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      ToolReply,
		Arguments: map[string]any{"message": "how do you handle jealousy in a relationship"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, textOf(t, result, 1), `"lang":"en"`)
}
