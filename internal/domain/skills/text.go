// Package skills detects catalogue skills, experience requirements and
// contract types in free-text job descriptions and CV summaries.
package skills

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quoteReplacer = strings.NewReplacer("’", "'", "‘", "'", "`", "'", "œ", "oe", "Œ", "oe")

// Fold lower-cases s and strips diacritics so "Expérience" and "experience"
// compare equal.
func Fold(s string) string {
	s = quoteReplacer.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Slugify turns a skill name into its catalogue key: "Node.js" -> "nodejs",
// "C++" -> "cpp", "C#" -> "csharp".
func Slugify(name string) string {
	s := Fold(strings.TrimSpace(name))
	s = strings.NewReplacer("c++", "cpp", "c#", "csharp", "f#", "fsharp", ".net", "dotnet").Replace(s)
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case r == ' ' || r == '-' || r == '_' || r == '/':
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
