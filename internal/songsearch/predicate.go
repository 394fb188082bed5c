package songsearch

import (
	"fmt"
	"strings"

	"github.com/llehouerou/songsearch/internal/catalog"
	"github.com/llehouerou/songsearch/internal/normalize"
)

// predicate reports whether a song matches an already folded argument.
type predicate func(song *catalog.Song, arg string) bool

// predicates covers every attribute except Unspecified (ranked search)
// and Instrument (category filter).
var predicates = [catalog.NumAttributes]predicate{
	catalog.Name: func(s *catalog.Song, arg string) bool {
		return strings.Contains(normalize.RemoveArticle(s.Name.SortStr), arg)
	},
	catalog.Artist: func(s *catalog.Song, arg string) bool {
		return strings.Contains(normalize.RemoveArticle(s.Artist.SortStr), arg)
	},
	catalog.Album: func(s *catalog.Song, arg string) bool {
		return strings.Contains(s.Album.SortStr, arg)
	},
	catalog.Genre: func(s *catalog.Song, arg string) bool {
		return strings.Contains(s.Genre.SortStr, arg)
	},
	catalog.Year: func(s *catalog.Song, arg string) bool {
		return strings.Contains(strings.ToLower(s.Year), arg) ||
			strings.Contains(strings.ToLower(s.UnmodifiedYear), arg)
	},
	catalog.Charter: func(s *catalog.Song, arg string) bool {
		return strings.Contains(s.Charter.SortStr, arg)
	},
	catalog.Playlist: func(s *catalog.Song, arg string) bool {
		return strings.Contains(s.Playlist.SortStr, arg)
	},
	catalog.Source: func(s *catalog.Song, arg string) bool {
		return strings.Contains(s.Source.SortStr, arg)
	},
}

// predicateFor returns the predicate for attr. A missing entry means the
// tokenizer and this table are out of sync, which is a programming error.
func predicateFor(attr catalog.Attribute) predicate {
	var p predicate
	if attr >= 0 && int(attr) < len(predicates) {
		p = predicates[attr]
	}
	if p == nil {
		panic(fmt.Sprintf("songsearch: unhandled search filter %v", attr))
	}
	return p
}

// filterCategories keeps the songs of each category matching token.
// Category names and order are kept; categories left empty are dropped.
func filterCategories(categories []catalog.Category, token FilterToken) []catalog.Category {
	match := predicateFor(token.Attribute)

	result := make([]catalog.Category, 0, len(categories))
	for _, cat := range categories {
		var songs []*catalog.Song
		for _, s := range cat.Songs {
			if match(s, token.Argument) {
				songs = append(songs, s)
			}
		}
		if len(songs) > 0 {
			result = append(result, catalog.Category{Name: cat.Name, Songs: songs})
		}
	}
	return result
}
