package ingestion

import (
	"fmt"

	"github.com/54b3r/vincula-go/internal/text"
)

const (
	// DefaultChunkSize is the window length in characters.
	DefaultChunkSize = 900
	// DefaultChunkOverlap is the number of characters shared by consecutive windows.
	DefaultChunkOverlap = 140
)

// Chunker splits text into fixed-size, overlapping character windows.
// Boundaries ignore word and sentence structure.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker validates size and overlap and returns a Chunker.
// overlap must be non-negative and strictly smaller than size, otherwise the
// window would never advance.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ingestion: chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("ingestion: chunk overlap must not be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("ingestion: chunk overlap (%d) must be less than chunk size (%d)", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Step returns the distance between the starts of consecutive windows.
func (c *Chunker) Step() int { return c.size - c.overlap }

// Chunk collapses whitespace in s and returns windows of at most size
// characters starting every Step() characters, until the start passes the end
// of the text. For a text of L characters that is ceil(L/Step()) windows; the
// trailing ones may be shorter than size. Empty input yields no chunks.
func (c *Chunker) Chunk(s string) []string {
	runes := []rune(text.CollapseSpace(s))
	if len(runes) == 0 {
		return nil
	}

	step := c.Step()
	chunks := make([]string, 0, (len(runes)+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := min(start+c.size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
