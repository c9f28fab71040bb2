// Package textnorm normalizes user-supplied identifiers.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Username folds a login name to its storage key: NFKD decomposition, drop
// everything outside ASCII, drop non-word characters, lowercase.
// "Zoë Smith" and "zoe_smith" differ only by the underscore.
func Username(raw string) string {
	decomposed := norm.NFKD.String(raw)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(strings.TrimSpace(nonWord.ReplaceAllString(b.String(), "")))
}
