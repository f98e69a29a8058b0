// Package config provides YAML-based configuration for vincula.
// Configuration is loaded with a layered precedence: defaults → YAML file → env vars.
// Environment variables always win.
//
// File search order:
//  1. --config CLI flag (explicit path)
//  2. VINCULA_CONFIG environment variable
//  3. ~/.vincula/config.yaml
//  4. ./vincula.yaml
//
// Scalar settings are applied to the environment by [Load] and read back by
// [EngineSettings], [Server] and [ReplyLogPath]. The declarative tables
// (languages, risk_patterns) have no env form and are read from the file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvConfig       = "VINCULA_CONFIG"
	EnvDocsDir      = "VINCULA_DOCS_DIR"
	EnvSharedDir    = "VINCULA_SHARED_DIR"
	EnvExtensions   = "VINCULA_EXTENSIONS"
	EnvTopK         = "VINCULA_TOP_K"
	EnvChunkSize    = "VINCULA_CHUNK_SIZE"
	EnvChunkOverlap = "VINCULA_CHUNK_OVERLAP"
	EnvMaxChars     = "VINCULA_MAX_CHARS"
	EnvPreviewChars = "VINCULA_PREVIEW_CHARS"
	EnvPreviewCount = "VINCULA_PREVIEW_COUNT"
	EnvDefaultLang  = "VINCULA_DEFAULT_LANG"
	EnvHintWeight   = "VINCULA_HINT_WEIGHT"
	EnvHost         = "VINCULA_HOST"
	EnvPort         = "VINCULA_PORT"
	EnvRateLimit    = "VINCULA_RATE_LIMIT"
	EnvRateBurst    = "VINCULA_RATE_BURST"
	EnvReplyLogDB   = "VINCULA_REPLY_LOG_DB"
)

// ReplyLogDisabled turns the reply log off when used as its path.
const ReplyLogDisabled = "disabled"

// Config is the top-level YAML configuration structure.
type Config struct {
	// Corpus locates the documents.
	Corpus CorpusConfig `yaml:"corpus"`

	// Retrieval tunes chunking and ranking.
	Retrieval RetrievalConfig `yaml:"retrieval"`

	// Reply tunes answer composition.
	Reply ReplyConfig `yaml:"reply"`

	// Detection tunes language detection.
	Detection DetectionConfig `yaml:"detection"`

	// Server configures the HTTP server.
	Server ServerConfig `yaml:"server"`

	// ReplyLog configures the SQLite reply log.
	ReplyLog ReplyLogConfig `yaml:"reply_log"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Languages replaces the built-in language table when non-empty. Order
	// is the detection tie-break priority.
	Languages []LanguageConfig `yaml:"languages"`

	// RiskPatterns replaces the built-in self-harm patterns when non-empty.
	RiskPatterns []string `yaml:"risk_patterns"`
}

// CorpusConfig holds corpus location settings.
type CorpusConfig struct {
	// DocsDir is the corpus root.
	DocsDir string `yaml:"docs_dir"`
	// SharedDir is the subdirectory indexed for every language.
	SharedDir string `yaml:"shared_dir"`
	// Extensions lists accepted document extensions.
	Extensions []string `yaml:"extensions"`
}

// RetrievalConfig holds chunking and ranking settings.
type RetrievalConfig struct {
	TopK         int `yaml:"top_k"`
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// ReplyConfig holds answer composition settings.
type ReplyConfig struct {
	MaxChars     int `yaml:"max_chars"`
	PreviewChars int `yaml:"preview_chars"`
	PreviewCount int `yaml:"preview_count"`
}

// DetectionConfig holds language detection settings.
type DetectionConfig struct {
	// DefaultLanguage is returned when no hint matches.
	DefaultLanguage string `yaml:"default_language"`
	// HintWeight is the score per matched hint.
	HintWeight int `yaml:"hint_weight"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the bind address.
	Host string `yaml:"host"`
	// Port is the TCP port.
	Port int `yaml:"port"`
	// RateLimit is the sustained chat requests per second per client IP.
	RateLimit float64 `yaml:"rate_limit"`
	// RateBurst is the per-IP burst size.
	RateBurst int `yaml:"rate_burst"`
}

// ReplyLogConfig holds reply log settings.
type ReplyLogConfig struct {
	// DBPath is the SQLite database path. Set to "disabled" to disable.
	DBPath string `yaml:"db_path"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is the log output format: json, text.
	Format string `yaml:"format"`
}

// envMapping maps YAML config fields to their corresponding env var names.
// Only non-empty YAML values are applied; env vars always take precedence.
var envMapping = []struct {
	envKey string
	value  func(*Config) string
}{
	{EnvDocsDir, func(c *Config) string { return c.Corpus.DocsDir }},
	{EnvSharedDir, func(c *Config) string { return c.Corpus.SharedDir }},
	{EnvExtensions, func(c *Config) string { return strings.Join(c.Corpus.Extensions, ",") }},
	{EnvTopK, func(c *Config) string { return intStr(c.Retrieval.TopK) }},
	{EnvChunkSize, func(c *Config) string { return intStr(c.Retrieval.ChunkSize) }},
	{EnvChunkOverlap, func(c *Config) string { return intStr(c.Retrieval.ChunkOverlap) }},
	{EnvMaxChars, func(c *Config) string { return intStr(c.Reply.MaxChars) }},
	{EnvPreviewChars, func(c *Config) string { return intStr(c.Reply.PreviewChars) }},
	{EnvPreviewCount, func(c *Config) string { return intStr(c.Reply.PreviewCount) }},
	{EnvDefaultLang, func(c *Config) string { return c.Detection.DefaultLanguage }},
	{EnvHintWeight, func(c *Config) string { return intStr(c.Detection.HintWeight) }},
	{EnvHost, func(c *Config) string { return c.Server.Host }},
	{EnvPort, func(c *Config) string { return intStr(c.Server.Port) }},
	{EnvRateLimit, func(c *Config) string { return floatStr(c.Server.RateLimit) }},
	{EnvRateBurst, func(c *Config) string { return intStr(c.Server.RateBurst) }},
	{EnvReplyLogDB, func(c *Config) string { return c.ReplyLog.DBPath }},
	{"LOG_LEVEL", func(c *Config) string { return c.Logging.Level }},
	{"LOG_FORMAT", func(c *Config) string { return c.Logging.Format }},
}

// Load reads a YAML config file and applies non-empty scalar values as
// environment variables. Existing env vars are never overwritten (env always
// wins). Returns the path that was loaded, or empty string if no file was
// found.
func Load(explicitPath string, log *slog.Logger) (string, error) {
	path := resolveConfigPath(explicitPath)
	if path == "" {
		log.Debug("config: no YAML config file found, using env vars only")
		return "", nil
	}

	cfg, err := ReadFile(path)
	if err != nil {
		return "", err
	}

	applied := 0
	for _, m := range envMapping {
		yamlVal := m.value(cfg)
		if yamlVal == "" || yamlVal == "0" {
			continue
		}
		if os.Getenv(m.envKey) != "" {
			continue // env var already set - do not override
		}
		os.Setenv(m.envKey, yamlVal)
		applied++
	}

	log.Info("config: loaded YAML config",
		slog.String("path", path),
		slog.Int("keys_applied", applied),
		slog.Int("languages", len(cfg.Languages)),
		slog.Int("risk_patterns", len(cfg.RiskPatterns)),
	)

	return path, nil
}

// ReadFile parses the YAML file at path.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// resolveConfigPath returns the first config file path that exists.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		p := filepath.Join(home, ".vincula", "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if _, err := os.Stat("vincula.yaml"); err == nil {
		return "vincula.yaml"
	}

	return ""
}

// intStr converts an int to string, returning "" for zero values.
func intStr(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

// floatStr converts a float64 to string, returning "" for zero values.
func floatStr(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
