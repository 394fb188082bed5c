package songsearch

import (
	"strings"

	"github.com/llehouerou/songsearch/internal/catalog"
	"github.com/llehouerou/songsearch/internal/normalize"
)

// Delimiter separates filters in a query.
const Delimiter = ";"

// FilterToken is one parsed filter of a query.
type FilterToken struct {
	Attribute catalog.Attribute
	Argument  string
}

// Equal reports attribute and argument equality.
func (t FilterToken) Equal(other FilterToken) bool {
	return t.Attribute == other.Attribute && t.Argument == other.Argument
}

// HasPrefix reports whether t extends other: same attribute, and other's
// argument is a prefix of t's.
func (t FilterToken) HasPrefix(other FilterToken) bool {
	return t.Attribute == other.Attribute && strings.HasPrefix(t.Argument, other.Argument)
}

// extends reports whether t's result can be computed from the result of
// other instead of from other's input. Every predicate narrows when its
// argument grows, except an instrument list that gains a fragment.
func (t FilterToken) extends(other FilterToken) bool {
	if !t.HasPrefix(other) {
		return false
	}
	if t.Attribute == catalog.Instrument {
		return len(instrumentFragments(t.Argument)) == len(instrumentFragments(other.Argument))
	}
	return true
}

func (t FilterToken) String() string {
	if t.Attribute == catalog.Unspecified {
		return t.Argument
	}
	return t.Attribute.String() + ":" + t.Argument
}

// prefixes are tested in order against each query piece.
var prefixes = []struct {
	prefix string
	attr   catalog.Attribute
	fold   func(string) string
}{
	{"artist:", catalog.Artist, normalize.RemoveDiacriticsAndArticle},
	{"source:", catalog.Source, strings.ToLower},
	{"album:", catalog.Album, normalize.RemoveDiacritics},
	{"charter:", catalog.Charter, strings.ToLower},
	{"year:", catalog.Year, strings.ToLower},
	{"genre:", catalog.Genre, strings.ToLower},
	{"playlist:", catalog.Playlist, strings.ToLower},
	{"name:", catalog.Name, normalize.RemoveDiacriticsAndArticle},
	{"title:", catalog.Name, normalize.RemoveDiacriticsAndArticle},
	{"instrument:", catalog.Instrument, normalize.RemoveDiacriticsAndArticle},
}

// Tokenize splits a raw query into filter tokens in query order. Empty
// pieces are skipped. Parsing stops after the first unprefixed (free text)
// piece, so a query holds at most one free-text term and it is last.
func Tokenize(raw string) []FilterToken {
	var tokens []FilterToken
	for piece := range strings.SplitSeq(raw, Delimiter) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}

		token := parsePiece(piece)
		tokens = append(tokens, token)
		if token.Attribute == catalog.Unspecified {
			break
		}
	}
	return tokens
}

// parsePiece also trims the argument before folding so that
// "artist: the beatles" loses its article.
func parsePiece(piece string) FilterToken {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(piece, p.prefix); ok {
			return FilterToken{
				Attribute: p.attr,
				Argument:  strings.TrimSpace(p.fold(strings.TrimSpace(rest))),
			}
		}
	}
	return FilterToken{
		Attribute: catalog.Unspecified,
		Argument:  strings.TrimSpace(normalize.RemoveDiacritics(piece)),
	}
}
