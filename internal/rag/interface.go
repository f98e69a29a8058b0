// Package rag implements lexical retrieval over a chunked corpus: TF-IDF
// weighting, sparse vectors and cosine-similarity ranking.
//
// An Index is built once and is read-only afterwards, so any number of
// goroutines may call Search on the same Index without locking.
package rag

// Chunk is a fixed-size window of a source document and the unit of retrieval.
type Chunk struct {
	// ID is a deterministic identifier derived from language, source and position.
	ID string `json:"id,omitempty"`
	// Source identifies the originating document (e.g. "pt/ansiedade.md").
	Source string `json:"source"`
	// Text is the whitespace-collapsed window content.
	Text string `json:"text"`
}

// Result pairs a chunk with its cosine similarity to the query.
type Result struct {
	// Score is the cosine similarity in (0, 1].
	Score float64 `json:"score"`
	// Chunk is the matched chunk.
	Chunk
}

// Searcher is the read side of an Index. *Index satisfies it.
type Searcher interface {
	// Search returns up to topK results with a strictly positive score,
	// best first.
	Search(query string, topK int) []Result
}
