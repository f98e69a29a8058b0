// Package text provides the normalisation and tokenisation shared by the
// chunker, the index builder and the retriever. Every function is pure and
// safe for concurrent use.
package text

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// disallowedRe matches every character that is not a lowercase ASCII letter,
// an accented letter in the à–ú range, a digit, or whitespace.
var disallowedRe = regexp.MustCompile(`[^a-z\x{00E0}-\x{00FA}0-9\s]`)

// spaceRe matches runs of whitespace, including Unicode spaces such as NBSP
// and U+2003 that RE2's \s leaves out.
var spaceRe = regexp.MustCompile(`[\s\p{Z}\x{0085}\x{001C}-\x{001F}]+`)

// CollapseSpace replaces every run of whitespace with a single space and trims
// the ends. Case and punctuation are preserved.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Normalize lowercases s, replaces every disallowed character with a space and
// collapses whitespace. The result contains only [a-z], à–ú, digits and single
// spaces, with no leading or trailing space.
//
// Example: "Ansiedade, e Comunicação!" → "ansiedade e comunicação"
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = disallowedRe.ReplaceAllString(s, " ")
	return CollapseSpace(s)
}

// Tokenize normalises s and splits it into words, dropping single-character
// tokens. Length is measured in characters, not bytes.
func Tokenize(s string) []string {
	fields := strings.Fields(Normalize(s))
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}
