// Package budget enforces the character budget on composed answers.
// Budgets are measured in characters (runes), so a cut never splits a
// multi-byte character, but it may split a word.
package budget

import "unicode/utf8"

// DefaultMaxChars is the default answer budget in characters.
const DefaultMaxChars = 2000

// Count returns the number of characters in s.
func Count(s string) int {
	return utf8.RuneCountInString(s)
}

// Fits reports whether s is within maxChars characters.
func Fits(s string, maxChars int) bool {
	return Count(s) <= maxChars
}

// Truncate returns the first maxChars characters of s. A non-positive budget
// yields the empty string.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	// Fast path: byte length bounds rune count.
	if len(s) <= maxChars {
		return s
	}
	n := 0
	for i := range s {
		if n == maxChars {
			return s[:i]
		}
		n++
	}
	return s
}

// Preview returns the first maxChars characters of s followed by suffix.
// The suffix is appended even when s is shorter than maxChars.
func Preview(s string, maxChars int, suffix string) string {
	return Truncate(s, maxChars) + suffix
}
