package detect

import (
	"fmt"
	"regexp"
	"strings"
)

// RiskDetector flags messages containing self-harm language. It is a
// heuristic safety gate over a fixed pattern list and misses phrasings the
// list does not cover.
type RiskDetector struct {
	patterns []*regexp.Regexp
}

// NewRiskDetector compiles patterns. Patterns are matched against the
// lowercased message, so they should be written in lowercase.
func NewRiskDetector(patterns []string) (*RiskDetector, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("detect: invalid risk pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &RiskDetector{patterns: compiled}, nil
}

// IsRisky reports whether any pattern matches the lowercased message.
func (d *RiskDetector) IsRisky(message string) bool {
	m := strings.ToLower(message)
	for _, re := range d.patterns {
		if re.MatchString(m) {
			return true
		}
	}
	return false
}
