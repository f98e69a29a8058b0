// Package engine owns the per-language indexes and answers messages.
//
// An Engine is built once, eagerly, by New and is immutable afterwards:
// Reply and Search read shared state without locking and may be called from
// any number of goroutines.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/54b3r/vincula-go/internal/corpus"
	"github.com/54b3r/vincula-go/internal/detect"
	"github.com/54b3r/vincula-go/internal/ingestion"
	"github.com/54b3r/vincula-go/internal/logging"
	"github.com/54b3r/vincula-go/internal/rag"
	"github.com/54b3r/vincula-go/internal/reply"
)

// IndexStats describes one language index.
type IndexStats struct {
	Lang       string `json:"lang"`
	Documents  int    `json:"documents"`
	Chunks     int    `json:"chunks"`
	Vocabulary int    `json:"vocabulary"`
}

// Engine answers messages from prebuilt language indexes.
type Engine struct {
	// languages holds codes in priority order.
	languages []string
	indexes   map[string]*rag.Index
	stats     []IndexStats

	langDetector *detect.LanguageDetector
	riskDetector *detect.RiskDetector
	composer     *reply.Composer
	retriever    *rag.EinoRetriever
	topK         int
}

// New validates s, builds every language index and returns a ready Engine.
// Corpus problems never fail construction: a language without documents gets
// an empty index. Only invalid settings return an error.
func New(ctx context.Context, s Settings) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)

	hints := make([]detect.LanguageHints, 0, len(s.Languages))
	templates := make(map[string]reply.Template, len(s.Languages))
	codes := make([]string, 0, len(s.Languages))
	for _, l := range s.Languages {
		hints = append(hints, detect.LanguageHints{Code: l.Code, Hints: l.Hints})
		templates[l.Code] = l.Template
		codes = append(codes, l.Code)
	}

	langDetector, err := detect.NewLanguageDetector(hints, s.DefaultLanguage, s.HintWeight)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	riskDetector, err := detect.NewRiskDetector(s.RiskPatterns)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	composer, err := reply.NewComposer(templates, s.DefaultLanguage, reply.Options{
		MaxChars:     s.MaxChars,
		PreviewChars: s.PreviewChars,
		PreviewCount: s.PreviewCount,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	loader, err := corpus.NewLoader(s.Corpus)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	chunker, err := ingestion.NewChunker(s.ChunkSize, s.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	pipeline, err := ingestion.NewPipeline(loader, chunker)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		languages:    codes,
		indexes:      make(map[string]*rag.Index, len(codes)),
		stats:        make([]IndexStats, 0, len(codes)),
		langDetector: langDetector,
		riskDetector: riskDetector,
		composer:     composer,
		topK:         s.TopK,
	}

	searchers := make(map[string]rag.Searcher, len(codes))
	for _, code := range codes {
		start := time.Now()
		res := pipeline.Run(ctx, code)
		idx := rag.Build(res.Chunks)

		e.indexes[code] = idx
		searchers[code] = idx
		st := IndexStats{Lang: code, Documents: res.Documents, Chunks: idx.Len(), Vocabulary: idx.VocabularySize()}
		e.stats = append(e.stats, st)

		log.Info("engine: index built",
			slog.String("lang", code),
			slog.Int("documents", st.Documents),
			slog.Int("chunks", st.Chunks),
			slog.Int("vocabulary", st.Vocabulary),
			slog.Duration("duration", time.Since(start)),
		)
	}

	e.retriever, err = rag.NewEinoRetriever(searchers, s.DefaultLanguage, s.TopK)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return e, nil
}

// Reply answers message. The language is detected first and is reported even
// for safety replies. A risky message short-circuits before retrieval.
func (e *Engine) Reply(message string) reply.Result {
	lang := e.langDetector.Detect(message)
	if e.riskDetector.IsRisky(message) {
		return e.composer.Compose(lang, true, nil)
	}
	return e.composer.Compose(lang, false, e.Search(lang, message, e.topK))
}

// Search runs a raw retrieval against lang's index. An unknown language or a
// non-positive topK yields no results.
func (e *Engine) Search(lang, query string, topK int) []rag.Result {
	idx, ok := e.indexes[lang]
	if !ok {
		return nil
	}
	return idx.Search(query, topK)
}

// DetectLanguage returns the language the engine would answer message in.
func (e *Engine) DetectLanguage(message string) string {
	return e.langDetector.Detect(message)
}

// IsRisky reports whether message trips the self-harm screen.
func (e *Engine) IsRisky(message string) bool {
	return e.riskDetector.IsRisky(message)
}

// Languages returns the supported codes in priority order.
func (e *Engine) Languages() []string {
	return append([]string(nil), e.languages...)
}

// Stats returns per-language index statistics in priority order.
func (e *Engine) Stats() []IndexStats {
	return append([]IndexStats(nil), e.stats...)
}

// TotalChunks returns the number of chunks across all indexes.
func (e *Engine) TotalChunks() int {
	total := 0
	for _, st := range e.stats {
		total += st.Chunks
	}
	return total
}

// TopK returns the configured number of results per query.
func (e *Engine) TopK() int { return e.topK }

// Retriever exposes the indexes as an eino retriever.Retriever.
func (e *Engine) Retriever() *rag.EinoRetriever { return e.retriever }
