// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripper decomposes to NFD, drops combining marks and recomposes, so
// "Étienne" becomes "Etienne".
var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes diacritics from s
func StripAccents(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}

// Make converts a display name into a lowercase, accent-free,
// hyphen-separated slug with no leading or trailing hyphen.
func Make(s string) string {
	s = StripAccents(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}

// MakeMax slugifies s and truncates the result to max bytes, trimming any
// hyphen the cut may have exposed.
func MakeMax(s string, max int) string {
	out := Make(s)
	if len(out) > max {
		out = strings.TrimRight(out[:max], "-")
	}
	return out
}
