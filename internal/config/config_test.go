package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/54b3r/vincula-go/internal/reply"
)

var allEnvKeys = []string{
	EnvConfig, EnvDocsDir, EnvSharedDir, EnvExtensions, EnvTopK, EnvChunkSize,
	EnvChunkOverlap, EnvMaxChars, EnvPreviewChars, EnvPreviewCount,
	EnvDefaultLang, EnvHintWeight, EnvHost, EnvPort, EnvRateLimit,
	EnvRateBurst, EnvReplyLogDB, "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every variable the package reads for the test's duration.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_NoFile(t *testing.T) {
	t.Parallel()

	path, err := Load("/nonexistent/path/config.yaml", slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path, got %q", path)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	clearEnv(t)
	cfgPath := writeConfig(t, `
corpus:
  docs_dir: /srv/vincula/docs
  extensions: [".txt", ".md", ".markdown"]
retrieval:
  top_k: 6
  chunk_size: 500
  chunk_overlap: 50
reply:
  max_chars: 1200
detection:
  default_language: en
server:
  port: 9090
  rate_limit: 2.5
reply_log:
  db_path: disabled
logging:
  level: debug
  format: text
`)

	loaded, err := Load(cfgPath, slog.Default())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != cfgPath {
		t.Errorf("loaded path: got %q, want %q", loaded, cfgPath)
	}

	checks := map[string]string{
		EnvDocsDir:      "/srv/vincula/docs",
		EnvExtensions:   ".txt,.md,.markdown",
		EnvTopK:         "6",
		EnvChunkSize:    "500",
		EnvChunkOverlap: "50",
		EnvMaxChars:     "1200",
		EnvDefaultLang:  "en",
		EnvPort:         "9090",
		EnvRateLimit:    "2.5",
		EnvReplyLogDB:   "disabled",
		"LOG_LEVEL":     "debug",
		"LOG_FORMAT":    "text",
	}
	for k, want := range checks {
		if got := os.Getenv(k); got != want {
			t.Errorf("%s: got %q, want %q", k, got, want)
		}
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	cfgPath := writeConfig(t, `
retrieval:
  top_k: 9
`)

	// Set env var BEFORE loading - it should NOT be overwritten.
	t.Setenv(EnvTopK, "3")

	if _, err := Load(cfgPath, slog.Default()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := os.Getenv(EnvTopK); got != "3" {
		t.Errorf("%s: expected env override %q, got %q", EnvTopK, "3", got)
	}
}

func TestLoad_ConfigFromEnvVar(t *testing.T) {
	clearEnv(t)
	cfgPath := writeConfig(t, "corpus:\n  docs_dir: from-env-config\n")
	t.Setenv(EnvConfig, cfgPath)

	loaded, err := Load("", slog.Default())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != cfgPath {
		t.Errorf("loaded path: got %q, want %q", loaded, cfgPath)
	}
	if got := os.Getenv(EnvDocsDir); got != "from-env-config" {
		t.Errorf("%s: got %q", EnvDocsDir, got)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfgPath := writeConfig(t, "{{invalid yaml")

	if _, err := Load(cfgPath, slog.Default()); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestEngineSettings_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := EngineSettings("")
	if err != nil {
		t.Fatalf("EngineSettings: %v", err)
	}
	if s.Corpus.Root != DefaultDocsDir || s.Corpus.SharedDir != "common" {
		t.Errorf("corpus: got %+v", s.Corpus)
	}
	if s.TopK != 4 || s.ChunkSize != 900 || s.ChunkOverlap != 140 || s.MaxChars != 2000 {
		t.Errorf("scalars: got top_k=%d size=%d overlap=%d max=%d", s.TopK, s.ChunkSize, s.ChunkOverlap, s.MaxChars)
	}
	if s.DefaultLanguage != "pt" || len(s.Languages) != 5 || s.Languages[0].Code != "pt" {
		t.Errorf("languages: default=%q n=%d", s.DefaultLanguage, len(s.Languages))
	}
	if len(s.RiskPatterns) == 0 {
		t.Error("expected built-in risk patterns")
	}
}

func TestEngineSettings_EnvScalars(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDocsDir, "/corpus")
	t.Setenv(EnvSharedDir, "shared")
	t.Setenv(EnvExtensions, " .txt , .rst ,")
	t.Setenv(EnvTopK, "2")
	t.Setenv(EnvChunkSize, "300")
	t.Setenv(EnvChunkOverlap, "0")
	t.Setenv(EnvDefaultLang, "de")

	s, err := EngineSettings("")
	if err != nil {
		t.Fatalf("EngineSettings: %v", err)
	}
	if s.Corpus.Root != "/corpus" || s.Corpus.SharedDir != "shared" {
		t.Errorf("corpus: got %+v", s.Corpus)
	}
	if strings.Join(s.Corpus.Extensions, "|") != ".txt|.rst" {
		t.Errorf("extensions: got %q", s.Corpus.Extensions)
	}
	if s.TopK != 2 || s.ChunkSize != 300 || s.ChunkOverlap != 0 || s.DefaultLanguage != "de" {
		t.Errorf("scalars: got %+v", s)
	}
}

func TestEngineSettings_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"non-numeric top-k": {EnvTopK, "many"},
		"overlap >= size":   {EnvChunkOverlap, "900"},
		"zero chunk size":   {EnvChunkSize, "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			if _, err := EngineSettings(""); err == nil {
				t.Errorf("expected error for %s=%q", kv[0], kv[1])
			}
		})
	}
}

func TestEngineSettings_Tables(t *testing.T) {
	clearEnv(t)
	cfgPath := writeConfig(t, `
languages:
  - code: en
    hints: [hello]
    safety_message: "Call someone you trust."
  - code: it
    hints: [ciao, come]
    labels:
      assessment: "1) Valutazione"
      explanation: "2) Spiegazione"
      resolution: "3) Soluzione"
    assessment: "Ecco una guida."
    explanation: "Le relazioni sono complesse."
    steps: ["Ascolta"]
    safety_message: "Parla con un adulto di fiducia."
detection:
  default_language: en
risk_patterns:
  - '\bfarmi del male\b'
`)
	if _, err := Load(cfgPath, slog.Default()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s, err := EngineSettings(cfgPath)
	if err != nil {
		t.Fatalf("EngineSettings: %v", err)
	}
	if len(s.Languages) != 2 || s.Languages[0].Code != "en" || s.Languages[1].Code != "it" {
		t.Fatalf("languages: got %+v", s.Languages)
	}
	en := s.Languages[0].Template
	if en.SafetyMessage != "Call someone you trust." {
		t.Errorf("en safety: got %q", en.SafetyMessage)
	}
	if en.Labels != reply.DefaultTemplates()["en"].Labels {
		t.Errorf("en labels should fall back to built-in, got %+v", en.Labels)
	}
	if s.Languages[1].Template.Labels.Resolution != "3) Soluzione" {
		t.Errorf("it labels: got %+v", s.Languages[1].Template.Labels)
	}
	if s.DefaultLanguage != "en" {
		t.Errorf("default language: got %q", s.DefaultLanguage)
	}
	if len(s.RiskPatterns) != 1 || s.RiskPatterns[0] != `\bfarmi del male\b` {
		t.Errorf("risk patterns: got %q", s.RiskPatterns)
	}
}

func TestServer_DefaultsAndEnv(t *testing.T) {
	clearEnv(t)

	s, err := Server()
	if err != nil {
		t.Fatalf("Server: %v", err)
	}
	want := ServerSettings{Host: DefaultHost, Port: DefaultPort, RateLimit: DefaultRateLimit, RateBurst: DefaultRateBurst}
	if s != want {
		t.Errorf("defaults: got %+v, want %+v", s, want)
	}

	t.Setenv(EnvPort, "7000")
	t.Setenv(EnvRateLimit, "0.5")
	s, err = Server()
	if err != nil {
		t.Fatalf("Server: %v", err)
	}
	if s.Port != 7000 || s.RateLimit != 0.5 {
		t.Errorf("env: got %+v", s)
	}

	t.Setenv(EnvRateLimit, "fast")
	if _, err := Server(); err == nil {
		t.Error("expected error for invalid rate limit")
	}
}

func TestReplyLogPath(t *testing.T) {
	clearEnv(t)

	t.Setenv(EnvReplyLogDB, ReplyLogDisabled)
	if p, err := ReplyLogPath(); err != nil || p != "" {
		t.Errorf("disabled: got %q, %v", p, err)
	}

	t.Setenv(EnvReplyLogDB, "/tmp/replies.db")
	if p, _ := ReplyLogPath(); p != "/tmp/replies.db" {
		t.Errorf("explicit: got %q", p)
	}

	t.Setenv(EnvReplyLogDB, "")
	p, err := ReplyLogPath()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if filepath.Base(p) != "replies.db" || filepath.Base(filepath.Dir(p)) != ".vincula" {
		t.Errorf("default: got %q", p)
	}
}

func TestFloatStr(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{0.0, ""},
		{0.5, "0.5"},
		{10, "10"},
		{2.25, "2.25"},
	}
	for _, tt := range tests {
		if got := floatStr(tt.in); got != tt.want {
			t.Errorf("floatStr(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
