// Package ingestion turns corpus documents into retrieval chunks.
// It runs once per language at engine start-up: load → collapse whitespace →
// split into overlapping windows → assign deterministic chunk IDs.
package ingestion

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"

	"github.com/54b3r/vincula-go/internal/corpus"
	"github.com/54b3r/vincula-go/internal/logging"
	"github.com/54b3r/vincula-go/internal/rag"
)

// DocumentSource is the subset of the corpus loader the pipeline needs.
// *corpus.Loader satisfies it; tests inject fixed documents.
type DocumentSource interface {
	// Load returns the documents indexed for language.
	Load(ctx context.Context, language string) []corpus.Document
}

// Result is the output of one pipeline run.
type Result struct {
	// Documents is the number of documents loaded.
	Documents int
	// Chunks holds every chunk in document order.
	Chunks []rag.Chunk
}

// Pipeline orchestrates the load → chunk flow for a language.
type Pipeline struct {
	// source provides the raw documents.
	source DocumentSource
	// chunker splits document text into windows.
	chunker *Chunker
}

// NewPipeline constructs a Pipeline from the provided dependencies.
func NewPipeline(source DocumentSource, chunker *Chunker) (*Pipeline, error) {
	if source == nil {
		return nil, fmt.Errorf("ingestion: document source must not be nil")
	}
	if chunker == nil {
		return nil, fmt.Errorf("ingestion: chunker must not be nil")
	}
	return &Pipeline{source: source, chunker: chunker}, nil
}

// Run loads and chunks every document for language. Documents that yield no
// text contribute no chunks. Run never fails: an empty corpus yields an empty
// Result.
func (p *Pipeline) Run(ctx context.Context, language string) Result {
	log := logging.FromContext(ctx)

	docs := p.source.Load(ctx, language)
	res := Result{Documents: len(docs)}
	for _, doc := range docs {
		windows := p.chunker.Chunk(doc.Text)
		for i, w := range windows {
			res.Chunks = append(res.Chunks, rag.Chunk{
				ID:     chunkID(language, doc.Source, i),
				Source: doc.Source,
				Text:   w,
			})
		}
		log.Debug("ingestion: chunked document",
			slog.String("lang", language),
			slog.String("source", doc.Source),
			slog.Int("chunks", len(windows)),
		)
	}
	return res
}

// chunkID generates a deterministic ID for a chunk from its language, source
// and position. The same corpus always produces the same IDs.
func chunkID(language, source string, index int) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s#%s#%d", language, source, index))
	return fmt.Sprintf("%x", h[:16])
}
