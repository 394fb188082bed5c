package catalog

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/llehouerou/songsearch/internal/normalize"
)

const (
	otherCategory  = "#"
	unknownYearCat = "Unknown Year"

	// lastKey sorts after every folded string.
	lastKey = "\uffff"
)

// Catalog is an in-memory set of songs. Sorted groupings are computed on
// first use per attribute and kept until Replace is called.
// It is safe for concurrent use.
type Catalog struct {
	mu     sync.Mutex
	songs  []*Song
	sorted map[Attribute][]Category
}

// New creates a catalog over songs.
func New(songs []*Song) *Catalog {
	return &Catalog{
		songs:  songs,
		sorted: make(map[Attribute][]Category),
	}
}

// Replace swaps the song set and drops every memoized grouping.
func (c *Catalog) Replace(songs []*Song) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.songs = songs
	c.sorted = make(map[Attribute][]Category)
}

// Len returns the number of songs.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.songs)
}

// Sorted returns the songs grouped into categories for attr. Categories and
// the songs inside them are in a stable, attribute-specific order. The
// returned slice is shared and must not be modified.
func (c *Catalog) Sorted(attr Attribute) []Category {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cats, ok := c.sorted[attr]; ok {
		return cats
	}
	cats := groupSongs(c.songs, attr)
	c.sorted[attr] = cats
	return cats
}

func groupSongs(songs []*Song, attr Attribute) []Category {
	ordered := slices.Clone(songs)
	slices.SortStableFunc(ordered, compareByName)

	switch attr {
	case Instrument:
		return groupByInstrument(ordered)
	case Year:
		return groupByKey(ordered, func(s *Song) (string, string) {
			if s.Year == "" {
				return unknownYearCat, lastKey
			}
			return s.Year, s.Year
		})
	case Artist, Album, Genre, Charter, Playlist, Source:
		return groupByKey(ordered, func(s *Song) (string, string) {
			field := songField(s, attr)
			if field.SortStr == "" {
				return "Unknown " + attr.Title(), lastKey
			}
			return field.Str, field.SortStr
		})
	default:
		return groupByKey(ordered, func(s *Song) (string, string) {
			name := firstLetter(normalize.RemoveArticle(s.Name.SortStr))
			if name == otherCategory {
				return name, ""
			}
			return name, strings.ToLower(name)
		})
	}
}

// groupByKey buckets songs by the key returned from fn. fn returns the
// display name and the sort key of the bucket; the first display name seen
// for a sort key wins.
func groupByKey(songs []*Song, fn func(*Song) (name, key string)) []Category {
	type bucket struct {
		name  string
		key   string
		songs []*Song
	}
	index := make(map[string]*bucket)
	var buckets []*bucket
	for _, s := range songs {
		name, key := fn(s)
		b, ok := index[key]
		if !ok {
			b = &bucket{name: name, key: key}
			index[key] = b
			buckets = append(buckets, b)
		}
		b.songs = append(b.songs, s)
	}

	slices.SortFunc(buckets, func(a, b *bucket) int {
		return cmp.Compare(a.key, b.key)
	})

	cats := make([]Category, len(buckets))
	for i, b := range buckets {
		cats[i] = Category{Name: b.name, Songs: b.songs}
	}
	return cats
}

func groupByInstrument(songs []*Song) []Category {
	var cats []Category
	for _, ins := range Instruments() {
		var members []*Song
		for _, s := range songs {
			if s.HasInstrument(ins) {
				members = append(members, s)
			}
		}
		if len(members) > 0 {
			cats = append(cats, Category{Name: ins.String(), Songs: members})
		}
	}
	return cats
}

func compareByName(a, b *Song) int {
	if c := strings.Compare(normalize.RemoveArticle(a.Name.SortStr), normalize.RemoveArticle(b.Name.SortStr)); c != 0 {
		return c
	}
	if c := strings.Compare(normalize.RemoveArticle(a.Artist.SortStr), normalize.RemoveArticle(b.Artist.SortStr)); c != 0 {
		return c
	}
	return strings.Compare(a.Path, b.Path)
}

func firstLetter(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return otherCategory
	}
	return string(unicode.ToUpper(r))
}

func songField(s *Song, attr Attribute) SortString {
	switch attr {
	case Name:
		return s.Name
	case Artist:
		return s.Artist
	case Album:
		return s.Album
	case Genre:
		return s.Genre
	case Charter:
		return s.Charter
	case Playlist:
		return s.Playlist
	case Source:
		return s.Source
	default:
		return SortString{}
	}
}
