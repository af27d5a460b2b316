// Package textnorm canonicalizes free-text answers for grading, so that
// case, accents and punctuation differences never fail a correct answer.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops the combining marks, so
// "Hà Nội" becomes "Ha Noi" before any further mapping.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold maps s to its canonical comparison form: trimmed, lowercased,
// diacritics stripped, every character outside [a-z0-9 ] replaced by a
// space, whitespace runs collapsed to one space. Total and idempotent.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}

// Equal reports whether a and b are the same answer once folded.
// Equality is exact on the folded forms; there is no fuzzy matching.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}
