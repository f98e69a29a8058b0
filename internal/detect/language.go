// Package detect holds the two message classifiers that run before retrieval:
// keyword-based language detection and regex-based self-harm risk screening.
// Both are heuristics. Detectors are immutable after construction and safe
// for concurrent use.
package detect

import (
	"fmt"
	"strings"
)

// DefaultHintWeight is the score added for each hint keyword found.
const DefaultHintWeight = 2

// LanguageHints lists the keywords that suggest a language.
type LanguageHints struct {
	// Code is the language code (e.g. "pt").
	Code string
	// Hints are lowercase keywords matched as substrings of the message.
	Hints []string
}

// LanguageDetector picks the language whose hint keywords best match a message.
type LanguageDetector struct {
	// languages is in priority order; earlier entries win ties.
	languages []LanguageHints
	// fallback is returned when no hint matches.
	fallback string
	// weight is the score per matched hint.
	weight int
}

// NewLanguageDetector builds a detector. The order of languages is the
// tie-break priority: when several languages share the highest non-zero score
// the earliest one wins. fallback is returned when nothing matches and must be
// one of the configured codes.
func NewLanguageDetector(languages []LanguageHints, fallback string, weight int) (*LanguageDetector, error) {
	if len(languages) == 0 {
		return nil, fmt.Errorf("detect: at least one language is required")
	}
	if weight <= 0 {
		weight = DefaultHintWeight
	}

	seen := make(map[string]bool, len(languages))
	langs := make([]LanguageHints, 0, len(languages))
	for _, l := range languages {
		if l.Code == "" {
			return nil, fmt.Errorf("detect: language code must not be empty")
		}
		if seen[l.Code] {
			return nil, fmt.Errorf("detect: duplicate language %q", l.Code)
		}
		seen[l.Code] = true

		hints := make([]string, 0, len(l.Hints))
		for _, h := range l.Hints {
			if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
				hints = append(hints, h)
			}
		}
		langs = append(langs, LanguageHints{Code: l.Code, Hints: hints})
	}
	if !seen[fallback] {
		return nil, fmt.Errorf("detect: default language %q is not a configured language", fallback)
	}

	return &LanguageDetector{languages: langs, fallback: fallback, weight: weight}, nil
}

// Default returns the language used when no hint matches.
func (d *LanguageDetector) Default() string { return d.fallback }

// Scores returns each language's score for message, keyed by code.
func (d *LanguageDetector) Scores(message string) map[string]int {
	m := strings.ToLower(message)
	scores := make(map[string]int, len(d.languages))
	for _, l := range d.languages {
		score := 0
		for _, h := range l.Hints {
			if strings.Contains(m, h) {
				score += d.weight
			}
		}
		scores[l.Code] = score
	}
	return scores
}

// Detect returns the best-scoring language for message. Ties go to the
// language configured first; a message matching no hint gets the default.
func (d *LanguageDetector) Detect(message string) string {
	scores := d.Scores(message)

	best, bestScore := d.fallback, 0
	for _, l := range d.languages {
		if s := scores[l.Code]; s > bestScore {
			best, bestScore = l.Code, s
		}
	}
	return best
}
