package engine

import (
	"fmt"

	"github.com/54b3r/vincula-go/internal/budget"
	"github.com/54b3r/vincula-go/internal/corpus"
	"github.com/54b3r/vincula-go/internal/detect"
	"github.com/54b3r/vincula-go/internal/ingestion"
	"github.com/54b3r/vincula-go/internal/reply"
)

// DefaultTopK is the number of chunks retrieved per query.
const DefaultTopK = 4

// Language bundles everything the engine knows about one supported language.
type Language struct {
	// Code is the language code and the name of its corpus subdirectory.
	Code string
	// Hints are the detection keywords for the language.
	Hints []string
	// Template is the localized reply template.
	Template reply.Template
}

// Settings is the complete engine configuration. The order of Languages is
// the detection tie-break priority.
type Settings struct {
	Corpus       corpus.Config
	ChunkSize    int
	ChunkOverlap int
	TopK         int

	Languages       []Language
	DefaultLanguage string
	HintWeight      int
	RiskPatterns    []string

	MaxChars     int
	PreviewChars int
	PreviewCount int
}

// DefaultSettings returns the built-in configuration rooted at docsDir.
func DefaultSettings(docsDir string) Settings {
	templates := reply.DefaultTemplates()
	hints := detect.DefaultLanguageHints()

	langs := make([]Language, 0, len(hints))
	for _, h := range hints {
		langs = append(langs, Language{Code: h.Code, Hints: h.Hints, Template: templates[h.Code]})
	}

	return Settings{
		Corpus: corpus.Config{
			Root:       docsDir,
			SharedDir:  corpus.DefaultSharedDir,
			Extensions: append([]string(nil), corpus.DefaultExtensions...),
		},
		ChunkSize:       ingestion.DefaultChunkSize,
		ChunkOverlap:    ingestion.DefaultChunkOverlap,
		TopK:            DefaultTopK,
		Languages:       langs,
		DefaultLanguage: detect.DefaultLanguage,
		HintWeight:      detect.DefaultHintWeight,
		RiskPatterns:    detect.DefaultRiskPatterns(),
		MaxChars:        budget.DefaultMaxChars,
		PreviewChars:    reply.DefaultPreviewChars,
		PreviewCount:    reply.DefaultPreviewCount,
	}
}

// Validate checks the settings that cannot be defaulted.
func (s Settings) Validate() error {
	if s.Corpus.Root == "" {
		return fmt.Errorf("engine: corpus root must be set")
	}
	if s.ChunkSize <= 0 {
		return fmt.Errorf("engine: chunk size must be positive, got %d", s.ChunkSize)
	}
	if s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return fmt.Errorf("engine: chunk overlap %d must be in [0, %d)", s.ChunkOverlap, s.ChunkSize)
	}
	if s.TopK <= 0 {
		return fmt.Errorf("engine: top-k must be positive, got %d", s.TopK)
	}
	if s.MaxChars <= 0 {
		return fmt.Errorf("engine: max chars must be positive, got %d", s.MaxChars)
	}
	if len(s.Languages) == 0 {
		return fmt.Errorf("engine: at least one language is required")
	}
	shared := s.Corpus.SharedDir
	if shared == "" {
		shared = corpus.DefaultSharedDir
	}
	for _, l := range s.Languages {
		if l.Code == shared {
			return fmt.Errorf("engine: language %q collides with the shared directory", l.Code)
		}
	}
	return nil
}
