// Package reply composes the structured answer returned for a message: a
// fixed safety reply when the message was flagged, otherwise a three-part
// localized template followed by previews of the best retrieved chunks.
package reply

import (
	"fmt"
	"strings"

	"github.com/54b3r/vincula-go/internal/budget"
	"github.com/54b3r/vincula-go/internal/rag"
)

// Domain tags attached to every result.
const (
	DomainSafety  = "safety"
	DomainGeneral = "general"
)

const (
	// DefaultPreviewChars is the length of each retrieved-chunk preview.
	DefaultPreviewChars = 150
	// DefaultPreviewCount is how many retrieved chunks are previewed.
	DefaultPreviewCount = 2

	previewPrefix = "- "
	previewSuffix = "..."
)

// Result is the structured reply handed to the transport layer.
type Result struct {
	// Lang is the detected language code.
	Lang string `json:"lang"`
	// Answer is the reply text, at most MaxChars characters.
	Answer string `json:"answer"`
	// Domain is DomainSafety or DomainGeneral.
	Domain string `json:"domain"`
	// Sources lists every retrieved chunk with its score. Empty for safety replies.
	Sources []rag.Result `json:"sources"`
}

// Labels are the localized section headings.
type Labels struct {
	Assessment  string `yaml:"assessment"`
	Explanation string `yaml:"explanation"`
	Resolution  string `yaml:"resolution"`
}

// Template holds the localized text for one language.
type Template struct {
	// Labels are the three section headings.
	Labels Labels `yaml:"labels"`
	// Assessment is the body of the first section.
	Assessment string `yaml:"assessment"`
	// Explanation is the body of the second section.
	Explanation string `yaml:"explanation"`
	// Steps are the numbered items of the resolution section.
	Steps []string `yaml:"steps"`
	// SafetyMessage replaces the whole answer for risky messages.
	SafetyMessage string `yaml:"safety_message"`
}

// Options tunes the composer's output size.
type Options struct {
	// MaxChars is the answer budget in characters.
	MaxChars int
	// PreviewChars is the length of each chunk preview.
	PreviewChars int
	// PreviewCount is the number of chunks previewed.
	PreviewCount int
}

// Composer renders results from localized templates. It is immutable and
// safe for concurrent use.
type Composer struct {
	templates map[string]Template
	fallback  string
	opts      Options
}

// NewComposer validates templates and returns a Composer. fallback names the
// template used for a language without one and must itself exist.
func NewComposer(templates map[string]Template, fallback string, opts Options) (*Composer, error) {
	for code, tpl := range templates {
		if tpl.SafetyMessage == "" {
			return nil, fmt.Errorf("reply: language %q has no safety message", code)
		}
		if tpl.Labels.Assessment == "" || tpl.Labels.Explanation == "" || tpl.Labels.Resolution == "" {
			return nil, fmt.Errorf("reply: language %q is missing section labels", code)
		}
	}
	if _, ok := templates[fallback]; !ok {
		return nil, fmt.Errorf("reply: no template for default language %q", fallback)
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = budget.DefaultMaxChars
	}
	if opts.PreviewChars <= 0 {
		opts.PreviewChars = DefaultPreviewChars
	}
	if opts.PreviewCount <= 0 {
		opts.PreviewCount = DefaultPreviewCount
	}
	return &Composer{templates: templates, fallback: fallback, opts: opts}, nil
}

// HasTemplate reports whether lang has its own template.
func (c *Composer) HasTemplate(lang string) bool {
	_, ok := c.templates[lang]
	return ok
}

// Compose builds the result for lang. A risky message gets the safety
// message and no sources. Otherwise the answer is the localized template plus
// previews of the first PreviewCount retrieved chunks, and every retrieved
// chunk is listed in Sources. The answer is cut to MaxChars characters, which
// may split a word.
func (c *Composer) Compose(lang string, risky bool, retrieved []rag.Result) Result {
	tpl, ok := c.templates[lang]
	if !ok {
		tpl = c.templates[c.fallback]
	}

	if risky {
		return Result{
			Lang:    lang,
			Answer:  budget.Truncate(tpl.SafetyMessage, c.opts.MaxChars),
			Domain:  DomainSafety,
			Sources: []rag.Result{},
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n\n", tpl.Labels.Assessment, tpl.Assessment)
	fmt.Fprintf(&b, "%s: %s\n\n", tpl.Labels.Explanation, tpl.Explanation)
	fmt.Fprintf(&b, "%s:", tpl.Labels.Resolution)
	for i, step := range tpl.Steps {
		fmt.Fprintf(&b, "\n%d. %s", i+1, step)
	}

	if previews := c.previews(retrieved); previews != "" {
		b.WriteString("\n\n")
		b.WriteString(previews)
	}

	sources := make([]rag.Result, len(retrieved))
	copy(sources, retrieved)

	return Result{
		Lang:    lang,
		Answer:  budget.Truncate(b.String(), c.opts.MaxChars),
		Domain:  DomainGeneral,
		Sources: sources,
	}
}

// previews renders one "- <text>..." line per previewed chunk.
func (c *Composer) previews(retrieved []rag.Result) string {
	n := min(c.opts.PreviewCount, len(retrieved))
	lines := make([]string, 0, n)
	for _, r := range retrieved[:n] {
		lines = append(lines, previewPrefix+budget.Preview(r.Text, c.opts.PreviewChars, previewSuffix))
	}
	return strings.Join(lines, "\n")
}
