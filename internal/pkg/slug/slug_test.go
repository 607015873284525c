package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	cases := map[string]string{
		"Rose Gold Face Serum!":     "rose-gold-face-serum",
		"  Lip   Balm  ":            "lip-balm",
		"--already-slugged--":       "already-slugged",
		"SPF 50+ Sunscreen (100ml)": "spf-50-sunscreen-100ml",
		"Crème Brûlée":              "cr-me-br-l-e",
		"!!!":                       "",
		"":                          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Derive(in), "input %q", in)
	}
}

func TestDerive_Shape(t *testing.T) {
	valid := regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)
	inputs := []string{
		"Hello, World", "a--b", "_x_", "Ünïcödé ßtring", "tab\tand\nnewline",
		"UPPER lower 123", "-lead", "trail-", "   ", "a/b\\c",
	}
	for _, in := range inputs {
		got := Derive(in)
		assert.Regexp(t, valid, got, "input %q", in)
	}
}
