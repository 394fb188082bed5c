package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSong_Year(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1980", "1980"},
		{", 1980", "1980"},
		{"1980-05-03", "1980"},
		{"  2008 ", "2008"},
		{"unknown", "unknown"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s := NewSong(SongInfo{Year: tt.raw})
			assert.Equal(t, tt.want, s.Year)
		})
	}
}

func TestNewSong_Folds(t *testing.T) {
	s := NewSong(SongInfo{Name: "  Déjà Vu ", Artist: "Beyoncé"})

	assert.Equal(t, "Déjà Vu", s.Name.Str)
	assert.Equal(t, "deja vu", s.Name.SortStr)
	assert.Equal(t, "beyonce", s.Artist.SortStr)
	assert.Equal(t, "Beyoncé - Déjà Vu", s.String())
}

func TestSong_Instruments(t *testing.T) {
	s := NewSong(SongInfo{Instruments: []Part{Vocals, FiveFretGuitar, Vocals}})

	assert.True(t, s.HasInstrument(Vocals))
	assert.False(t, s.HasInstrument(Keys))
	assert.Equal(t, []Part{FiveFretGuitar, Vocals}, s.Instruments())
}

func TestSong_InfoRoundTrip(t *testing.T) {
	info := SongInfo{
		Path: "/songs/a/song.ini", Mtime: 42, Name: "A", Artist: "B", Album: "C",
		Genre: "D", Year: ", 1999", Charter: "E", Playlist: "F", Source: "G",
		Instruments: []Part{Keys, ProKeys},
	}
	assert.Equal(t, info, NewSong(info).Info())
}

func TestSortString_Compare(t *testing.T) {
	a := NewSortString("Abba")
	b := NewSortString("abba")
	c := NewSortString("Bee Gees")

	assert.Negative(t, a.Compare(b))
	assert.Negative(t, b.Compare(c))
	assert.Zero(t, a.Compare(a))
}

func TestCountSongs(t *testing.T) {
	songs := testSongs()
	cats := []Category{{Songs: songs[:2]}, {Songs: songs[1:]}}
	assert.Equal(t, 6, CountSongs(cats))
	assert.Zero(t, CountSongs(nil))
}
