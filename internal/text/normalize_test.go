package text

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"punctuation", "Hello, World!", "hello world"},
		{"accents kept", "Ansiedade e Comunicação", "ansiedade e comunicação"},
		{"whitespace runs", "  a\t\tb \n\n c  ", "a b c"},
		{"digits kept", "Passo 1: respire", "passo 1 respire"},
		{"outside accent range", "für", "f r"},
		{"apostrophe", "don't", "don t"},
		{"only symbols", "?!.,;", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalize_NoDoubleSpaceOrUppercase(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"ÉÇÃO  ÀÚ  X",
		"Line one.\r\n\r\nLine TWO\v\fend",
		"Straße ÖL ça va ¿qué?",
		strings.Repeat("Ab  ", 50),
	}
	for _, in := range inputs {
		got := Normalize(in)
		assert.NotContains(t, got, "  ", "input %q", in)
		assert.Equal(t, strings.TrimSpace(got), got)
		for _, r := range got {
			assert.False(t, unicode.IsUpper(r), "uppercase %q in %q", r, got)
			if unicode.IsSpace(r) {
				assert.Equal(t, ' ', r)
			}
		}
	}
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	t.Parallel()

	got := Tokenize("Eu e você: a relação é boa")
	assert.Equal(t, []string{"eu", "você", "relação", "boa"}, got)
}

func TestTokenize_CountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	// "é" is two bytes but one character, so it is dropped.
	assert.Empty(t, Tokenize("é à"))
	assert.Equal(t, []string{"às"}, Tokenize("às"))
}

func TestCollapseSpace_PreservesCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello, World!", CollapseSpace("  Hello,\n\tWorld!  "))
}

func TestCollapseSpace_UnicodeWhitespace(t *testing.T) {
	t.Parallel()

	in := "a\u00a0\u00a0b\u2003c\u3000 d\u0085e\u001ff\u00a0"
	assert.Equal(t, "a b c d e f", CollapseSpace(in))
}
