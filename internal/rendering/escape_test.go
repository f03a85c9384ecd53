package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text untouched", "Software Engineer", "Software Engineer"},
		{"ampersand", "R&D", `R\&D`},
		{"percent", "grew revenue 40%", `grew revenue 40\%`},
		{"dollar and hash", "$5M budget, team #1", `\$5M budget, team \#1`},
		{"underscore", "snake_case", `snake\_case`},
		{"braces", "set {a, b}", `set \{a, b\}`},
		{"caret and tilde", "2^10 ~fast", `2\textasciicircum{}10 \textasciitilde{}fast`},
		{"backslash", `C:\temp`, `C:\textbackslash{}temp`},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EscapeLaTeX(tc.input))
		})
	}
}

func TestEscapeLaTeX_EscapedOutputIsStable(t *testing.T) {
	// The replacer runs in a single pass, so already-escaped sequences
	// produced by it must not be re-escaped in a way that nests markers.
	once := EscapeLaTeX("100% & counting")
	assert.Equal(t, `100\% \& counting`, once)
}
