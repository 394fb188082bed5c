package songsearch

import (
	"github.com/llehouerou/songsearch/internal/catalog"
)

// countingProvider wraps a catalog and counts Sorted calls.
type countingProvider struct {
	cat   *catalog.Catalog
	calls int
	last  catalog.Attribute
}

func (p *countingProvider) Sorted(attr catalog.Attribute) []catalog.Category {
	p.calls++
	p.last = attr
	return p.cat.Sorted(attr)
}

func fixtureSongs() []*catalog.Song {
	infos := []catalog.SongInfo{
		{
			Path: "/songs/queen/bohemian/song.ini", Name: "Bohemian Rhapsody", Artist: "Queen",
			Album: "A Night at the Opera", Genre: "Rock", Year: "1975", Charter: "Harmonix",
			Playlist: "Rock Band", Source: "rb1",
			Instruments: []catalog.Part{catalog.FiveFretGuitar, catalog.FiveFretBass, catalog.FourLaneDrums, catalog.Vocals, catalog.Harmony},
		},
		{
			Path: "/songs/queen/dust/song.ini", Name: "Another One Bites the Dust", Artist: "Queen",
			Album: "The Game", Genre: "Rock", Year: "1980", Charter: "Harmonix",
			Playlist: "Rock Band", Source: "rb2",
			Instruments: []catalog.Part{catalog.FiveFretBass, catalog.FourLaneDrums, catalog.Vocals},
		},
		{
			Path: "/songs/queen/playthegame/song.ini", Name: "Play the Game", Artist: "Queen",
			Album: "The Game", Genre: "Rock", Year: ", 1980", Charter: "Acai",
			Playlist: "Custom", Source: "custom",
			Instruments: []catalog.Part{catalog.FiveFretGuitar, catalog.Keys, catalog.Vocals},
		},
		{
			Path: "/songs/metallica/day/song.ini", Name: "The Day That Never Comes", Artist: "Metallica",
			Album: "Death Magnetic", Genre: "Metal", Year: "2008", Charter: "Harmonix",
			Playlist: "Rock Band", Source: "rb2",
			Instruments: []catalog.Part{catalog.FiveFretGuitar, catalog.ProDrums, catalog.FourLaneDrums, catalog.Vocals},
		},
		{
			Path: "/songs/beyonce/dejavu/song.ini", Name: "Déjà Vu", Artist: "Beyoncé",
			Album: "B'Day", Genre: "R&B", Year: "2006", Charter: "Acai",
			Playlist: "Custom", Source: "custom",
			Instruments: []catalog.Part{catalog.Vocals, catalog.Keys},
		},
		{
			Path: "/songs/queenies/night/song.ini", Name: "Queen of the Night", Artist: "The Queenies",
			Album: "Nocturne", Genre: "Pop", Year: "1999", Charter: "Someone",
			Playlist: "Custom", Source: "custom",
			Instruments: []catalog.Part{catalog.FiveFretGuitar, catalog.Vocals},
		},
	}

	songs := make([]*catalog.Song, len(infos))
	for i, info := range infos {
		songs[i] = catalog.NewSong(info)
		songs[i].ID = int64(i + 1)
	}
	return songs
}

func newFixtureSearcher() (*Searcher, *countingProvider) {
	p := &countingProvider{cat: catalog.New(fixtureSongs())}
	return New(p, WithWorkers(4)), p
}

// names flattens categories to song names, in order.
func names(categories []catalog.Category) []string {
	var out []string
	for _, c := range categories {
		for _, s := range c.Songs {
			out = append(out, s.Name.Str)
		}
	}
	return out
}

func categoryNames(categories []catalog.Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = c.Name
	}
	return out
}

func songSet(categories []catalog.Category) map[*catalog.Song]struct{} {
	set := make(map[*catalog.Song]struct{})
	for _, c := range categories {
		for _, s := range c.Songs {
			set[s] = struct{}{}
		}
	}
	return set
}
