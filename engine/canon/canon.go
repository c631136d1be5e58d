// Package canon maps human-entered labels to stable comparison keys. Two
// labels that differ only by case, spacing or punctuation share one key.
package canon

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Key canonicalizes a display string into a comparison-stable key: the
// input is compatibility normalized (NFKC), every non-alphanumeric
// character (spaces, punctuation, non-breaking spaces) is dropped, and the
// remainder is lowercased. Keys carry no separators, so "Head  Stock" and
// "headstock" share one key. Deterministic, pure and idempotent; an empty
// or unusable input yields "".
func Key(text string) string {
	if text == "" {
		return ""
	}
	s := norm.NFKC.String(text)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isAlnum(r) {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// Equal reports whether two display strings canonicalize identically.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
