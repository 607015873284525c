package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Derive turns a display name into a URL-safe slug. The result only holds
// [a-z0-9-], never starts or ends with a hyphen and never repeats one.
func Derive(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
