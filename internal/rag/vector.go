package rag

import (
	"math"
	"slices"
)

// SparseVector maps a token to its weight. Tokens that are absent have an
// implicit weight of zero; use Get rather than indexing when that matters.
type SparseVector map[string]float64

// Get returns the weight of token, or 0 when the token is absent.
func (v SparseVector) Get(token string) float64 {
	return v[token]
}

// Tokens returns the tokens of v in ascending order. Sums over a vector run
// in this order so equal vectors always produce bit-identical results.
func (v SparseVector) Tokens() []string {
	toks := make([]string, 0, len(v))
	for tok := range v {
		toks = append(toks, tok)
	}
	slices.Sort(toks)
	return toks
}

// Dot returns the inner product of v and o, summed over the smaller vector's
// tokens in sorted order.
func (v SparseVector) Dot(o SparseVector) float64 {
	a, b := v, o
	if len(b) < len(a) {
		a, b = b, a
	}
	return dotOver(a.Tokens(), a, b)
}

// Norm returns the Euclidean length of v, summed in sorted token order.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, tok := range v.Tokens() {
		w := v[tok]
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Cosine returns dot(a,b) / (|a|·|b|). It is 0 when either vector has zero
// length and is capped at 1 to absorb floating-point overshoot.
func Cosine(a, b SparseVector) float64 {
	return cosine(a.Dot(b), a.Norm(), b.Norm())
}

// dotOver sums a[t]*b[t] for t in toks, in that order.
func dotOver(toks []string, a, b SparseVector) float64 {
	var sum float64
	for _, tok := range toks {
		sum += a[tok] * b.Get(tok)
	}
	return sum
}

func cosine(dot, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	return math.Min(dot/(na*nb), 1)
}
