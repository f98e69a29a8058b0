// Package audit emits one structured log entry per CLI command invocation so
// operators can see which corpus, limits and config file a run used.
//
// Path values are logged with the home directory shortened to "~".
package audit

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/54b3r/vincula-go/internal/config"
)

// auditEntry defines an env var to include in the audit log.
type auditEntry struct {
	// key is the environment variable name.
	key string
	// path marks values that are filesystem paths.
	path bool
}

// auditKeys is the ordered list of env vars included in every audit log entry.
var auditKeys = []auditEntry{
	{config.EnvDocsDir, true},
	{config.EnvSharedDir, false},
	{config.EnvExtensions, false},
	{config.EnvTopK, false},
	{config.EnvChunkSize, false},
	{config.EnvChunkOverlap, false},
	{config.EnvMaxChars, false},
	{config.EnvDefaultLang, false},
	{config.EnvHost, false},
	{config.EnvPort, false},
	{config.EnvRateLimit, false},
	{config.EnvReplyLogDB, true},
	{"LOG_LEVEL", false},
	{"LOG_FORMAT", false},
}

// LogCommandStart emits a structured audit log entry when a CLI command begins.
func LogCommandStart(log *slog.Logger, command string, configPath string) {
	log.LogAttrs(context.Background(), slog.LevelInfo, "audit: command start", Attrs(command, configPath)...)
}

// Attrs returns the attributes logged by LogCommandStart.
func Attrs(command, configPath string) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("command", command),
		slog.String("config_file", sanitisePath(configPath, "none")),
	}
	for _, entry := range auditKeys {
		val := os.Getenv(entry.key)
		if entry.path {
			attrs = append(attrs, slog.String(entry.key, sanitisePath(val, "unset")))
		} else {
			attrs = append(attrs, slog.String(entry.key, valOrUnset(val)))
		}
	}
	return attrs
}

// valOrUnset returns the value if non-empty, "unset" otherwise.
func valOrUnset(v string) string {
	if v != "" {
		return v
	}
	return "unset"
}

// sanitisePath returns p with the home directory redacted, or empty when p
// is blank.
func sanitisePath(p, empty string) string {
	if p == "" {
		return empty
	}
	home, err := os.UserHomeDir()
	if err == nil && home != "" && strings.HasPrefix(p, home) {
		return "~" + p[len(home):]
	}
	return p
}
