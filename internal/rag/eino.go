package rag

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/retriever"
	"github.com/cloudwego/eino/schema"
)

// Metadata keys set on documents returned by EinoRetriever.
const (
	MetaSource   = "source"
	MetaLanguage = "lang"
)

var _ retriever.Retriever = (*EinoRetriever)(nil)

// EinoRetriever exposes a set of per-language indexes through the eino
// retriever component interface, so the lexical index can be dropped into an
// eino chain or graph in place of a vector store.
//
// The index is selected with retriever.WithIndex(<language code>); without
// it the default language is searched. retriever.WithTopK and
// retriever.WithScoreThreshold are honoured.
type EinoRetriever struct {
	// indexes maps language code to its searcher.
	indexes map[string]Searcher
	// defaultIndex is searched when no index option is given.
	defaultIndex string
	// defaultTopK is used when no top-k option is given.
	defaultTopK int
}

// NewEinoRetriever constructs an EinoRetriever. defaultIndex must be a key
// of indexes.
func NewEinoRetriever(indexes map[string]Searcher, defaultIndex string, defaultTopK int) (*EinoRetriever, error) {
	if _, ok := indexes[defaultIndex]; !ok {
		return nil, fmt.Errorf("rag: default index %q not found", defaultIndex)
	}
	if defaultTopK <= 0 {
		defaultTopK = 4
	}
	return &EinoRetriever{indexes: indexes, defaultIndex: defaultIndex, defaultTopK: defaultTopK}, nil
}

// Retrieve searches the selected language index and converts the results to
// eino documents carrying the similarity score and source metadata.
func (r *EinoRetriever) Retrieve(_ context.Context, query string, opts ...retriever.Option) ([]*schema.Document, error) {
	defIndex, defTopK := r.defaultIndex, r.defaultTopK
	o := retriever.GetCommonOptions(&retriever.Options{
		Index: &defIndex,
		TopK:  &defTopK,
	}, opts...)

	lang := r.defaultIndex
	if o.Index != nil && *o.Index != "" {
		lang = *o.Index
	}
	idx, ok := r.indexes[lang]
	if !ok {
		return nil, fmt.Errorf("rag: unknown index %q", lang)
	}

	topK := r.defaultTopK
	if o.TopK != nil && *o.TopK > 0 {
		topK = *o.TopK
	}

	results := idx.Search(query, topK)
	docs := make([]*schema.Document, 0, len(results))
	for _, res := range results {
		if o.ScoreThreshold != nil && res.Score < *o.ScoreThreshold {
			continue
		}
		doc := &schema.Document{
			ID:      res.ID,
			Content: res.Text,
			MetaData: map[string]any{
				MetaSource:   res.Source,
				MetaLanguage: lang,
			},
		}
		docs = append(docs, doc.WithScore(res.Score))
	}
	return docs, nil
}
