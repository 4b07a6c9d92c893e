// Package textutil provides the small text transforms shared by the codec,
// the workout manager and the filter engine.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase collapses whitespace and title-cases every word.
// Example: "barbell  squat" -> "Barbell Squat".
func TitleCase(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

// CapitalizeWords upper-cases the first character of each whitespace
// separated word and leaves the rest untouched.
func CapitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// LeadingInt parses the integer prefix of s, allowing surrounding whitespace
// and a sign: "5" -> 5, " 12x" -> 12, "-3" -> -3. It reports false when s
// does not start with a number.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		// Saturate instead of overflowing on absurd inputs.
		if n < 1<<30 {
			n = n*10 + int(r-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// PositiveInt returns the leading integer of s when it is at least 1,
// otherwise def.
func PositiveInt(s string, def int) int {
	n, ok := LeadingInt(s)
	if !ok || n < 1 {
		return def
	}
	return n
}
