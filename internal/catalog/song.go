// Package catalog holds the song records the search engine filters, and
// the provider that returns them sorted and grouped into categories.
package catalog

import (
	"regexp"
	"strings"

	"github.com/llehouerou/songsearch/internal/normalize"
)

// SortString pairs a display value with its folded form used for sorting
// and matching.
type SortString struct {
	Str     string
	SortStr string
}

// NewSortString builds a SortString from a display value.
func NewSortString(s string) SortString {
	s = strings.TrimSpace(s)
	return SortString{Str: s, SortStr: normalize.RemoveDiacritics(s)}
}

func (s SortString) String() string {
	return s.Str
}

// Compare orders by the folded form, then by the display value.
func (s SortString) Compare(other SortString) int {
	if c := strings.Compare(s.SortStr, other.SortStr); c != 0 {
		return c
	}
	return strings.Compare(s.Str, other.Str)
}

var yearRe = regexp.MustCompile(`\d{4}`)

// Song is a single chart/track record.
type Song struct {
	ID       int64
	Path     string
	Mtime    int64
	Name     SortString
	Artist   SortString
	Album    SortString
	Genre    SortString
	Charter  SortString
	Playlist SortString
	Source   SortString

	// Year is the four-digit year found in UnmodifiedYear, or UnmodifiedYear
	// itself when it holds none. Song folders often carry values like
	// ", 1980" or "1980-05-03".
	Year           string
	UnmodifiedYear string

	instruments InstrumentSet
}

// SongInfo is the raw metadata a Song is built from.
type SongInfo struct {
	Path        string
	Mtime       int64
	Name        string
	Artist      string
	Album       string
	Genre       string
	Year        string
	Charter     string
	Playlist    string
	Source      string
	Instruments []Part
}

// NewSong builds a Song, folding every string field.
func NewSong(info SongInfo) *Song {
	s := &Song{
		Path:           info.Path,
		Mtime:          info.Mtime,
		Name:           NewSortString(info.Name),
		Artist:         NewSortString(info.Artist),
		Album:          NewSortString(info.Album),
		Genre:          NewSortString(info.Genre),
		Charter:        NewSortString(info.Charter),
		Playlist:       NewSortString(info.Playlist),
		Source:         NewSortString(info.Source),
		UnmodifiedYear: strings.TrimSpace(info.Year),
	}
	s.Year = parseYear(s.UnmodifiedYear)
	for _, i := range info.Instruments {
		s.instruments = s.instruments.With(i)
	}
	return s
}

// Info returns the raw metadata of the song.
func (s *Song) Info() SongInfo {
	return SongInfo{
		Path:        s.Path,
		Mtime:       s.Mtime,
		Name:        s.Name.Str,
		Artist:      s.Artist.Str,
		Album:       s.Album.Str,
		Genre:       s.Genre.Str,
		Year:        s.UnmodifiedYear,
		Charter:     s.Charter.Str,
		Playlist:    s.Playlist.Str,
		Source:      s.Source.Str,
		Instruments: s.instruments.List(),
	}
}

// HasInstrument reports whether the song has a part for i.
func (s *Song) HasInstrument(i Part) bool {
	return s.instruments.Has(i)
}

// Instruments returns the song's parts in vocabulary order.
func (s *Song) Instruments() []Part {
	return s.instruments.List()
}

func (s *Song) String() string {
	if s.Artist.Str == "" {
		return s.Name.Str
	}
	return s.Artist.Str + " - " + s.Name.Str
}

func parseYear(raw string) string {
	if y := yearRe.FindString(raw); y != "" {
		return y
	}
	return raw
}

// Category is a named group of songs. Categories are built once and never
// mutated; filtering produces new categories.
type Category struct {
	Name  string
	Songs []*Song
}

// CountSongs returns the number of songs across categories, counting a
// song once per category it appears in.
func CountSongs(categories []Category) int {
	n := 0
	for _, c := range categories {
		n += len(c.Songs)
	}
	return n
}
