package classify

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a merchant description for rule matching:
// uppercased, trimmed, with every run of whitespace or punctuation collapsed
// to a single space. Total over any input, including the empty string.
//
// Rule patterns are passed through the same function when a chain is built,
// so "WAL-MART" and "WAL MART #1234" match each other.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToUpper(r))
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}
