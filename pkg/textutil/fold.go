// Package textutil normalises Portuguese chat text for keyword matching.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// particles stay lower-case inside a title-cased name.
var particles = map[string]bool{"da": true, "de": true, "do": true, "das": true, "dos": true, "e": true}

// StripAccents removes combining diacritics, e.g. "João" becomes "Joao".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold lower-cases and strips accents.
func Fold(s string) string {
	return strings.ToLower(StripAccents(s))
}

// ContainsAny reports whether the folded text contains any folded keyword.
func ContainsAny(text string, keywords []string) bool {
	folded := Fold(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(folded, Fold(kw)) {
			return true
		}
	}
	return false
}

// MinNameWordLetters is the shortest word accepted inside a full name.
const MinNameWordLetters = 2

// TitleName title-cases a person or place name, keeping particles lower-case.
// Parts joined by a hyphen or apostrophe are capitalised separately, so
// "d'ávila" becomes "D'Ávila".
func TitleName(s string) string {
	caser := cases.Title(language.BrazilianPortuguese)
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		if i > 0 && particles[lower] {
			words[i] = lower
			continue
		}
		words[i] = titleWord(caser, lower)
	}
	return strings.Join(words, " ")
}

func titleWord(caser cases.Caser, w string) string {
	var b strings.Builder
	start := 0
	for i, r := range w {
		if isNameJoiner(r) {
			b.WriteString(caser.String(w[start:i]))
			b.WriteRune(r)
			start = i + utf8.RuneLen(r)
		}
	}
	b.WriteString(caser.String(w[start:]))
	return b.String()
}

// IsNameWord reports whether w can be one word of a full name: runs of
// letters joined by single inner hyphens or apostrophes ("Ana-Clara",
// "D'Ávila"), with at least MinNameWordLetters letters.
func IsNameWord(w string) bool {
	letters := 0
	prevJoiner := true
	for _, r := range w {
		switch {
		case unicode.IsLetter(r):
			letters++
			prevJoiner = false
		case isNameJoiner(r):
			if prevJoiner {
				return false
			}
			prevJoiner = true
		default:
			return false
		}
	}
	return !prevJoiner && letters >= MinNameWordLetters
}

// CountLetters returns the number of letter runes in s.
func CountLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

func isNameJoiner(r rune) bool {
	return r == '-' || r == '\'' || r == '\u2019'
}
