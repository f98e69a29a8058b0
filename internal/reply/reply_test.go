package reply

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/54b3r/vincula-go/internal/rag"
)

func newDefaultComposer(t *testing.T, opts Options) *Composer {
	t.Helper()
	c, err := NewComposer(DefaultTemplates(), "pt", opts)
	require.NoError(t, err)
	return c
}

func sampleResults() []rag.Result {
	return []rag.Result{
		{Score: 0.9, Chunk: rag.Chunk{Source: "pt/ansiedade.md", Text: "ansiedade e comunicação no relacionamento"}},
		{Score: 0.5, Chunk: rag.Chunk{Source: "common/rotina.md", Text: strings.Repeat("x", 400)}},
		{Score: 0.1, Chunk: rag.Chunk{Source: "pt/ciumes.md", Text: "ciúmes"}},
	}
}

func TestCompose_Safety(t *testing.T) {
	t.Parallel()
	c := newDefaultComposer(t, Options{})

	for code, tpl := range DefaultTemplates() {
		res := c.Compose(code, true, sampleResults())
		assert.Equal(t, code, res.Lang)
		assert.Equal(t, DomainSafety, res.Domain)
		assert.Equal(t, tpl.SafetyMessage, res.Answer)
		require.NotNil(t, res.Sources, "sources must encode as an empty list")
		assert.Empty(t, res.Sources)
	}
}

func TestCompose_SafetyIsTruncated(t *testing.T) {
	t.Parallel()
	c := newDefaultComposer(t, Options{MaxChars: 10})

	res := c.Compose("en", true, nil)
	assert.Equal(t, "I care abo", res.Answer)
}

func TestCompose_General(t *testing.T) {
	t.Parallel()
	c := newDefaultComposer(t, Options{})
	results := sampleResults()

	res := c.Compose("pt", false, results)
	assert.Equal(t, "pt", res.Lang)
	assert.Equal(t, DomainGeneral, res.Domain)
	assert.Equal(t, results, res.Sources)

	assert.True(t, strings.HasPrefix(res.Answer, "1) Diagnóstico: "))
	assert.Contains(t, res.Answer, "\n\n2) Explicação: ")
	assert.Contains(t, res.Answer, "\n\n3) Resolução:\n1. ")
	assert.Contains(t, res.Answer, "\n3. Escute para entender")

	// Only the first two chunks are previewed, each capped at 150 characters.
	assert.Contains(t, res.Answer, "\n- ansiedade e comunicação no relacionamento...")
	assert.Contains(t, res.Answer, "\n- "+strings.Repeat("x", DefaultPreviewChars)+"...")
	assert.NotContains(t, res.Answer, strings.Repeat("x", DefaultPreviewChars+1))
	assert.NotContains(t, res.Answer, "ciúmes")
}

func TestCompose_GeneralWithoutResults(t *testing.T) {
	t.Parallel()
	c := newDefaultComposer(t, Options{})

	res := c.Compose("en", false, nil)
	assert.Equal(t, DomainGeneral, res.Domain)
	require.NotNil(t, res.Sources)
	assert.Empty(t, res.Sources)
	assert.NotContains(t, res.Answer, "\n- ")
	assert.True(t, strings.HasSuffix(res.Answer, "Listen to understand, not just respond"))
}

func TestCompose_AnswerBudget(t *testing.T) {
	t.Parallel()
	c := newDefaultComposer(t, Options{MaxChars: 40})

	res := c.Compose("de", false, sampleResults())
	assert.Equal(t, 40, utf8.RuneCountInString(res.Answer))
	assert.True(t, strings.HasPrefix(res.Answer, "1) Einschätzung: "))
	assert.Len(t, res.Sources, 3)
}

func TestCompose_PreviewOptions(t *testing.T) {
	t.Parallel()
	c := newDefaultComposer(t, Options{PreviewChars: 5, PreviewCount: 1})

	res := c.Compose("en", false, sampleResults())
	assert.Contains(t, res.Answer, "\n- ansie...")
	assert.NotContains(t, res.Answer, "\n- xxxxx")
}

func TestCompose_UnknownLanguageUsesFallbackTemplate(t *testing.T) {
	t.Parallel()
	c := newDefaultComposer(t, Options{})

	res := c.Compose("it", true, nil)
	assert.Equal(t, "it", res.Lang)
	assert.Equal(t, DefaultTemplates()["pt"].SafetyMessage, res.Answer)
	assert.False(t, c.HasTemplate("it"))
	assert.True(t, c.HasTemplate("fr"))
}

func TestNewComposer_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewComposer(DefaultTemplates(), "it", Options{})
	assert.Error(t, err)

	noSafety := DefaultTemplates()
	en := noSafety["en"]
	en.SafetyMessage = ""
	noSafety["en"] = en
	_, err = NewComposer(noSafety, "pt", Options{})
	assert.Error(t, err)

	noLabels := map[string]Template{"xx": {SafetyMessage: "stay safe"}}
	_, err = NewComposer(noLabels, "xx", Options{})
	assert.Error(t, err)
}

func TestDefaultTemplates_Complete(t *testing.T) {
	t.Parallel()

	tpls := DefaultTemplates()
	for _, code := range []string{"pt", "en", "es", "fr", "de"} {
		tpl, ok := tpls[code]
		require.True(t, ok, code)
		assert.NotEmpty(t, tpl.Assessment, code)
		assert.NotEmpty(t, tpl.Explanation, code)
		assert.Len(t, tpl.Steps, 3, code)
		assert.NotEmpty(t, tpl.SafetyMessage, code)
	}
}
