package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Great Case", "my-great-case"},
		{"  Hello   World  ", "hello-world"},
		{"Already-Hyphenated --- Title", "already-hyphenated-title"},
		{"Symbols!@#$%^&*()", "symbols"},
		{"CamelCase42", "camelcase42"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"My Great Case", "a  b  c", "Ünïcode Títle", "x--y__z"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestResolve(t *testing.T) {
	// Explicit slug wins verbatim after trimming.
	assert.Equal(t, "custom-slug", Resolve("Ignored Title", "  custom-slug "))
	// Empty explicit falls back to the title.
	assert.Equal(t, "my-great-case", Resolve("My Great Case", ""))
	assert.Equal(t, "my-great-case", Resolve("My Great Case", "   "))
	// All-symbol titles resolve to empty; the caller rejects those.
	assert.Equal(t, "", Resolve("!!!", ""))
}
