package services

import (
	"net/http"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMessage picks a message for a code registered without one: the
// standard reason phrase for status when it has one, otherwise the code name
// split into title-cased words ("payloadTooLarge" -> "Payload Too Large").
func DefaultMessage(status int, code string, tag language.Tag) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return Humanize(code, tag)
}

// Humanize splits a camelCase, snake_case or kebab-case identifier into
// title-cased words. An Und tag means English.
func Humanize(code string, tag language.Tag) string {
	if tag == language.Und {
		tag = language.English
	}
	caser := cases.Title(tag)

	words := splitWords(code)
	for i, w := range words {
		words[i] = caser.String(strings.ToLower(w))
	}
	return strings.Join(words, " ")
}

// splitWords breaks s on separators, lower->upper transitions, the end of an
// upper-case run ("HTTPError" -> "HTTP", "Error") and letter->digit steps.
func splitWords(s string) []string {
	rs := []rune(s)
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range rs {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
				flush()
			case unicode.IsDigit(r) && unicode.IsLetter(prev):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}
