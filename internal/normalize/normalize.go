// Package normalize provides the string folding used to compare song
// metadata against search arguments.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// articles are stripped from the start of names and artists so that
// "The Beatles" sorts and matches as "Beatles".
var articles = []string{
	"The ", // The Beatles, The Day That Never Comes
	"El ",  // El Final
	"La ",  // La Bamba, La Muralla Verde
	"Le ",  // Le Temps de la Rentrée
	"Les ", // Les Rita Mitsouko
	"Los ", // Los Fabulosos Cadillacs
}

// RemoveDiacritics lowercases s and removes accents from its characters,
// so that "Beyoncé" becomes "beyonce".
func RemoveDiacritics(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}

// RemoveArticle strips a single leading article, matched case-insensitively.
func RemoveArticle(s string) string {
	if s == "" {
		return s
	}
	for _, article := range articles {
		if len(s) >= len(article) && strings.EqualFold(s[:len(article)], article) {
			return s[len(article):]
		}
	}
	return s
}

// RemoveDiacriticsAndArticle applies RemoveDiacritics then RemoveArticle.
func RemoveDiacriticsAndArticle(s string) string {
	return RemoveArticle(RemoveDiacritics(s))
}
