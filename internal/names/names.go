// Package names implements the naming rules shared by users, lists and items:
// length bounds, the user-name alphabet, and the folding that produces the
// normalized form used for uniqueness checks.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MinLength is the minimum length of any name.
	MinLength = 1

	// MaxUserLength is the maximum length of a user name, in runes.
	MaxUserLength = 16

	// MaxListLength is the maximum length of a list or item name, in runes.
	MaxListLength = 32
)

// userAlphabet is the set of runes allowed in a user name: basic latin
// letters, German umlauts and sharp s, and the Greek alphabet.
const userAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"äöüßÄÖÜẞ" +
	"αβγδεζηθικλμνξοπρσςτυφχψω" +
	"ΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩ"

// asciiFold maps the runes that survive diacritic stripping but still need a
// latin equivalent: sharp s and the Greek alphabet (lowercased beforehand).
var asciiFold = map[rune]rune{
	'ß': 's',
	'α': 'a', 'β': 'b', 'γ': 'g', 'δ': 'd', 'ε': 'e', 'ζ': 'z',
	'η': 'h', 'θ': 't', 'ι': 'i', 'κ': 'k', 'λ': 'l', 'μ': 'm',
	'ν': 'n', 'ξ': 'c', 'ο': 'o', 'π': 'p', 'ρ': 'r', 'σ': 's',
	'ς': 's', 'τ': 't', 'υ': 'y', 'φ': 'f', 'χ': 'x', 'ψ': 'p',
	'ω': 'o',
}

// stripMarks removes combining marks after canonical decomposition,
// turning ä into a, ü into u and so on.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ValidUserName reports whether name is a well-formed user name: within the
// length bounds and drawn entirely from the user alphabet.
func ValidUserName(name string) bool {
	n := 0
	for _, r := range name {
		if !strings.ContainsRune(userAlphabet, r) {
			return false
		}
		n++
	}
	return n >= MinLength && n <= MaxUserLength
}

// ValidListName reports whether name is a well-formed list or item name.
// Only the length is constrained.
func ValidListName(name string) bool {
	n := len([]rune(name))
	return n >= MinLength && n <= MaxListLength
}

// Normalize folds a user name to the form used for uniqueness: lowercased,
// diacritics stripped, Greek letters and sharp s mapped to latin. Two display
// names collide exactly when their normalized forms are equal.
func Normalize(name string) string {
	lower := strings.ToLower(name)
	stripped, _, err := transform.String(stripMarks, lower)
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; fall back to the
		// lowercased input rather than dropping the uniqueness key.
		stripped = lower
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if folded, ok := asciiFold[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}
	return b.String()
}
