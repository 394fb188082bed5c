package catalog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".m4a":  true,
	".mp4":  true,
}

func isAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// readAudioTags reads a tagged audio file. Audio files carry no chart
// parts, so the song has no instruments.
func readAudioTags(path, source string) (SongInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return SongInfo{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return SongInfo{}, err
	}

	name := m.Title()
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}

	info := SongInfo{
		Name:     name,
		Artist:   artist,
		Album:    m.Album(),
		Genre:    m.Genre(),
		Playlist: filepath.Base(filepath.Dir(path)),
		Source:   sourceName(source),
	}
	if y := m.Year(); y > 0 {
		info.Year = strconv.Itoa(y)
	}
	return info, nil
}
