package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/54b3r/vincula-go/internal/engine"
	"github.com/54b3r/vincula-go/internal/reply"
)

// DefaultDocsDir is the corpus root used when none is configured.
const DefaultDocsDir = "docs"

// Server defaults.
const (
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 8088
	DefaultRateLimit = 10.0
	DefaultRateBurst = 20
)

// LanguageConfig is one entry of the languages table. Empty text fields of a
// built-in language fall back to its built-in template.
type LanguageConfig struct {
	Code          string       `yaml:"code"`
	Hints         []string     `yaml:"hints"`
	Labels        reply.Labels `yaml:"labels"`
	Assessment    string       `yaml:"assessment"`
	Explanation   string       `yaml:"explanation"`
	Steps         []string     `yaml:"steps"`
	SafetyMessage string       `yaml:"safety_message"`
}

// ServerSettings are the HTTP listener settings.
type ServerSettings struct {
	Host      string
	Port      int
	RateLimit float64
	RateBurst int
}

// EngineSettings assembles the engine configuration: built-in defaults, then
// the tables from the YAML file at path (if any), then env scalars.
func EngineSettings(path string) (engine.Settings, error) {
	s := engine.DefaultSettings(envOr(EnvDocsDir, DefaultDocsDir))

	if path != "" {
		cfg, err := ReadFile(path)
		if err != nil {
			return engine.Settings{}, err
		}
		if len(cfg.Languages) > 0 {
			s.Languages = languages(cfg.Languages)
		}
		if len(cfg.RiskPatterns) > 0 {
			s.RiskPatterns = cfg.RiskPatterns
		}
	}

	if v := os.Getenv(EnvSharedDir); v != "" {
		s.Corpus.SharedDir = v
	}
	if v := os.Getenv(EnvExtensions); v != "" {
		s.Corpus.Extensions = splitList(v)
	}
	if v := os.Getenv(EnvDefaultLang); v != "" {
		s.DefaultLanguage = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvTopK, &s.TopK},
		{EnvChunkSize, &s.ChunkSize},
		{EnvChunkOverlap, &s.ChunkOverlap},
		{EnvMaxChars, &s.MaxChars},
		{EnvPreviewChars, &s.PreviewChars},
		{EnvPreviewCount, &s.PreviewCount},
		{EnvHintWeight, &s.HintWeight},
	}
	for _, f := range ints {
		if err := envInt(f.key, f.dst); err != nil {
			return engine.Settings{}, err
		}
	}

	return s, s.Validate()
}

// Server returns the HTTP listener settings from the environment.
func Server() (ServerSettings, error) {
	s := ServerSettings{
		Host:      envOr(EnvHost, DefaultHost),
		Port:      DefaultPort,
		RateLimit: DefaultRateLimit,
		RateBurst: DefaultRateBurst,
	}
	if err := envInt(EnvPort, &s.Port); err != nil {
		return ServerSettings{}, err
	}
	if err := envInt(EnvRateBurst, &s.RateBurst); err != nil {
		return ServerSettings{}, err
	}
	if v := os.Getenv(EnvRateLimit); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ServerSettings{}, fmt.Errorf("config: %s: invalid number %q", EnvRateLimit, v)
		}
		s.RateLimit = f
	}
	return s, nil
}

// ReplyLogPath returns the reply log database path, or "" when the log is
// disabled. The default is ~/.vincula/replies.db.
func ReplyLogPath() (string, error) {
	v := os.Getenv(EnvReplyLogDB)
	switch v {
	case ReplyLogDisabled:
		return "", nil
	case "":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".vincula", "replies.db"), nil
	default:
		return v, nil
	}
}

// languages converts the YAML table, filling gaps from the built-in
// templates.
func languages(in []LanguageConfig) []engine.Language {
	builtin := reply.DefaultTemplates()
	out := make([]engine.Language, 0, len(in))
	for _, l := range in {
		tpl := builtin[l.Code]
		if l.Labels.Assessment != "" {
			tpl.Labels.Assessment = l.Labels.Assessment
		}
		if l.Labels.Explanation != "" {
			tpl.Labels.Explanation = l.Labels.Explanation
		}
		if l.Labels.Resolution != "" {
			tpl.Labels.Resolution = l.Labels.Resolution
		}
		if l.Assessment != "" {
			tpl.Assessment = l.Assessment
		}
		if l.Explanation != "" {
			tpl.Explanation = l.Explanation
		}
		if len(l.Steps) > 0 {
			tpl.Steps = l.Steps
		}
		if l.SafetyMessage != "" {
			tpl.SafetyMessage = l.SafetyMessage
		}
		out = append(out, engine.Language{Code: l.Code, Hints: l.Hints, Template: tpl})
	}
	return out
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt overwrites *dst with the integer in key when key is set.
func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("config: %s: invalid integer %q", key, v)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
