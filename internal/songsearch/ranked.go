package songsearch

import (
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/songsearch/internal/catalog"
	"github.com/llehouerou/songsearch/internal/normalize"
)

// SearchResultsCategory names the single category produced by a free-text
// search.
const SearchResultsCategory = "Search Results"

// rankChunk is the number of songs ranked per task.
const rankChunk = 256

// rankedSong is a free-text match. Indexes are -1 when the argument was
// not found in that field.
type rankedSong struct {
	song        *catalog.Song
	name        string
	artist      string
	nameIndex   int
	artistIndex int
	rank        int
}

func newRankedSong(song *catalog.Song, arg string) rankedSong {
	r := rankedSong{
		song:   song,
		name:   normalize.RemoveArticle(song.Name.SortStr),
		artist: normalize.RemoveArticle(song.Artist.SortStr),
	}
	r.nameIndex = strings.Index(r.name, arg)
	r.artistIndex = strings.Index(r.artist, arg)

	r.rank = r.nameIndex
	if r.rank < 0 || (r.artistIndex >= 0 && r.artistIndex < r.rank) {
		r.rank = r.artistIndex
	}
	return r
}

// compareRanked orders free-text matches: lower rank first, then a name
// match before an artist-only match unless the artist index is strictly
// smaller, then by index and folded text within the same field.
func compareRanked(a, b rankedSong) int {
	if a.rank != b.rank {
		return a.rank - b.rank
	}

	if a.nameIndex >= 0 {
		if b.nameIndex < 0 {
			// b matched on artist only
			if a.nameIndex <= b.artistIndex {
				return -1
			}
			return 1
		}
		if a.nameIndex != b.nameIndex {
			return a.nameIndex - b.nameIndex
		}
		if c := strings.Compare(a.name, b.name); c != 0 {
			return c
		}
		return compareIdentity(a, b)
	}

	if b.nameIndex >= 0 {
		if a.artistIndex < b.nameIndex {
			return -1
		}
		return 1
	}

	if a.artistIndex != b.artistIndex {
		return a.artistIndex - b.artistIndex
	}
	if c := strings.Compare(a.artist, b.artist); c != 0 {
		return c
	}
	return compareIdentity(a, b)
}

// compareIdentity breaks exact ties so the order never depends on the
// order songs were fed in.
func compareIdentity(a, b rankedSong) int {
	if c := a.song.Name.Compare(b.song.Name); c != 0 {
		return c
	}
	if c := a.song.Artist.Compare(b.song.Artist); c != 0 {
		return c
	}
	return strings.Compare(a.song.Path, b.song.Path)
}

// RankedSearch flattens categories, keeping each song once, and returns the songs whose name or
// artist contains argument, best match first, as a single category. Ranks
// are computed by up to workers goroutines; the order only depends on the
// final sort, which is stable over the input order.
func RankedSearch(categories []catalog.Category, argument string, workers int) []catalog.Category {
	var songs []*catalog.Song
	seen := make(map[*catalog.Song]struct{})
	for _, cat := range categories {
		for _, s := range cat.Songs {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			songs = append(songs, s)
		}
	}

	ranked := make([]rankedSong, len(songs))
	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for start := 0; start < len(songs); start += rankChunk {
		end := min(start+rankChunk, len(songs))
		g.Go(func() error {
			for i := start; i < end; i++ {
				ranked[i] = newRankedSong(songs[i], argument)
			}
			return nil
		})
	}
	_ = g.Wait() // rank computation cannot fail

	matches := slices.DeleteFunc(ranked, func(r rankedSong) bool {
		return r.rank < 0
	})
	slices.SortStableFunc(matches, compareRanked)

	results := make([]*catalog.Song, len(matches))
	for i, r := range matches {
		results[i] = r.song
	}
	return []catalog.Category{{Name: SearchResultsCategory, Songs: results}}
}
