package rag

import (
	"sort"

	"github.com/54b3r/vincula-go/internal/text"
)

// QueryVector builds a TF-IDF vector for query using the query's own term
// frequencies and the index's IDF table. Out-of-vocabulary tokens are dropped.
func (idx *Index) QueryVector(query string) SparseVector {
	return idx.weigh(text.Tokenize(query))
}

// Search scores every chunk against query by cosine similarity and returns at
// most topK results with a strictly positive score, best first. Equal scores
// keep chunk build order. Fewer than topK results (including none) is normal
// when the corpus has little in common with the query.
func (idx *Index) Search(query string, topK int) []Result {
	if topK <= 0 || len(idx.chunks) == 0 {
		return nil
	}

	q := idx.QueryVector(query)
	if len(q) == 0 {
		return nil
	}

	// One summation order for every chunk: equal chunks score bit-identically.
	qToks := q.Tokens()
	qNorm := q.Norm()

	scored := make([]Result, 0, len(idx.chunks))
	for i, vec := range idx.vectors {
		s := cosine(dotOver(qToks, q, vec), qNorm, idx.norms[i])
		if s <= 0 {
			continue
		}
		scored = append(scored, Result{Score: s, Chunk: idx.chunks[i]})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
