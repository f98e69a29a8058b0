package rag

import (
	"math"

	"github.com/54b3r/vincula-go/internal/text"
)

// Index owns a language's chunks, its smoothed IDF table and the parallel
// list of per-chunk TF-IDF vectors. It is immutable after Build.
type Index struct {
	chunks  []Chunk
	idf     map[string]float64
	vectors []SparseVector
	// norms[i] is vectors[i].Norm(), computed once at build.
	norms []float64
}

// Build tokenises every chunk and computes
//
//	df[t]  = number of chunks containing t at least once
//	idf[t] = ln((N+1)/(df[t]+1)) + 1
//	w(t,c) = count(t in c) / max(1, len(tokens(c))) * idf[t]
//
// where N is the chunk count. IDF is strictly positive for every token seen.
// Zero chunks yield an empty, queryable Index.
func Build(chunks []Chunk) *Index {
	idx := &Index{
		chunks:  append([]Chunk(nil), chunks...),
		idf:     make(map[string]float64),
		vectors: make([]SparseVector, 0, len(chunks)),
		norms:   make([]float64, 0, len(chunks)),
	}
	if len(chunks) == 0 {
		return idx
	}

	tokens := make([][]string, len(chunks))
	df := make(map[string]int)
	for i, c := range chunks {
		tokens[i] = text.Tokenize(c.Text)
		seen := make(map[string]struct{}, len(tokens[i]))
		for _, tok := range tokens[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(chunks))
	for tok, d := range df {
		idx.idf[tok] = math.Log((n+1)/(float64(d)+1)) + 1
	}

	for _, toks := range tokens {
		vec := idx.weigh(toks)
		idx.vectors = append(idx.vectors, vec)
		idx.norms = append(idx.norms, vec.Norm())
	}
	return idx
}

// weigh builds a TF-IDF vector for toks against the index's IDF table.
// Tokens missing from the table get weight 0 and are left out.
func (idx *Index) weigh(toks []string) SparseVector {
	counts := make(map[string]int, len(toks))
	for _, tok := range toks {
		counts[tok]++
	}
	total := float64(max(1, len(toks)))

	vec := make(SparseVector, len(counts))
	for tok, c := range counts {
		idf, ok := idx.idf[tok]
		if !ok {
			continue
		}
		vec[tok] = float64(c) / total * idf
	}
	return vec
}

// Len returns the number of chunks in the index.
func (idx *Index) Len() int { return len(idx.chunks) }

// VocabularySize returns the number of distinct tokens in the IDF table.
func (idx *Index) VocabularySize() int { return len(idx.idf) }

// Chunk returns the i-th chunk in build order.
func (idx *Index) Chunk(i int) Chunk { return idx.chunks[i] }

// IDF returns the IDF weight of token and whether the token was seen at build
// time. Unseen tokens report 0.
func (idx *Index) IDF(token string) (float64, bool) {
	w, ok := idx.idf[token]
	return w, ok
}

// Vector returns a copy of the i-th chunk's TF-IDF vector.
func (idx *Index) Vector(i int) SparseVector {
	out := make(SparseVector, len(idx.vectors[i]))
	for k, v := range idx.vectors[i] {
		out[k] = v
	}
	return out
}
