package detect

// DefaultLanguage is the language assumed when no hint keyword matches.
const DefaultLanguage = "pt"

// DefaultLanguageHints returns the built-in hint lists in tie-break priority
// order: pt, en, es, fr, de.
func DefaultLanguageHints() []LanguageHints {
	return []LanguageHints{
		{Code: "pt", Hints: []string{"você", "como", "não", "pra", "porque", "relacionamento", "ciúmes", "ansiedade"}},
		{Code: "en", Hints: []string{"you", "how", "don't", "because", "relationship", "anxiety", "communication"}},
		{Code: "es", Hints: []string{"cómo", "tú", "porque", "relación", "ansiedad", "comunicación"}},
		{Code: "fr", Hints: []string{"comment", "vous", "parce", "relation", "anxiété", "communication"}},
		{Code: "de", Hints: []string{"wie", "du", "weil", "beziehung", "angst", "kommunikation"}},
	}
}

// DefaultRiskPatterns returns the built-in self-harm patterns. The list is
// deliberately small and does not cover every phrasing.
func DefaultRiskPatterns() []string {
	return []string{
		// pt
		`\bsuic[ií]d`,
		`\bme matar\b`,
		`\bme quero matar\b`,
		`\bquero me matar\b`,
		`\bquero morrer\b`,
		`\bautoagress`,
		`\bme cortar\b`,
		`\bnao aguento mais\b`,
		`\bnão aguento mais\b`,
		// en
		`\bkill myself\b`,
		`\bend my life\b`,
		`\bwant to die\b`,
		`\bhurt myself\b`,
		`\bself[- ]?harm`,
		// es
		`\bmatarme\b`,
		`\bquiero morir\b`,
		`\bquitarme la vida\b`,
		// fr
		`\bme tuer\b`,
		`\bveux mourir\b`,
		// de
		`\bmich umbringen\b`,
		`\bsterben will\b`,
		`\bselbstmord`,
		`\bsuizid`,
	}
}
