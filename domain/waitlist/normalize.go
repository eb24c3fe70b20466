package waitlist

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName uppercases the first character of every whitespace-delimited
// word and leaves everything else, including the spacing, untouched.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)

	// cases.Caser keeps state; one per call.
	upper := cases.Upper(language.Und)

	var b strings.Builder
	b.Grow(len(name))

	atWordStart := true
	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])
		switch {
		case unicode.IsSpace(r):
			atWordStart = true
			b.WriteString(name[i : i+size])
		case atWordStart:
			atWordStart = false
			b.WriteString(upper.String(name[i : i+size]))
		default:
			b.WriteString(name[i : i+size])
		}
		i += size
	}

	return b.String()
}
