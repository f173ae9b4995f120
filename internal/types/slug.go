package types

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify converts a name into the form used in project URLs.
//
// Accents on Latin letters are stripped, letters are lower-cased and every
// run of whitespace or hyphens becomes a single hyphen. All other characters
// that are not letters, digits or underscores are dropped. Letters of other
// scripts keep their marks, so "Ремонт кухни" becomes "ремонт-кухни".
//
// The result is empty for names without any letters or digits.
func Slugify(s string) string {
	var b strings.Builder
	separator := false

	// marks is set while the last written rune is a letter of a non-Latin script
	marks := false

	for _, r := range norm.NFD.String(strings.ToLower(s)) {
		switch {
		case unicode.Is(unicode.M, r):
			if marks {
				b.WriteRune(r)
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if separator && b.Len() > 0 {
				b.WriteRune('-')
			}
			separator = false
			marks = unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r)
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			separator = true
			marks = false
		default:
			marks = false
		}
	}

	return norm.NFC.String(b.String())
}
