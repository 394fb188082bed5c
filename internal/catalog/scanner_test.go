package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSongINI(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, songININame)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func songsByName(t *testing.T, s *Store) map[string]*Song {
	t.Helper()
	songs, err := s.Songs()
	require.NoError(t, err)
	out := make(map[string]*Song, len(songs))
	for _, song := range songs {
		out[song.Name.Str] = song
	}
	return out
}

func TestReadSongINI(t *testing.T) {
	root := t.TempDir()
	path := writeSongINI(t, filepath.Join(root, "Rock Band", "Queen - Play the Game"), `
[Song]
Name = Play the Game
artist = Queen
album = The Game
year = , 1980
frets = Harmonix
diff_guitar = 3
diff_bass = -1
diff_vocals_harm = 0
diff_band = oops
`)

	info, err := readSongINI(path, root)
	require.NoError(t, err)

	assert.Equal(t, "Play the Game", info.Name)
	assert.Equal(t, "Queen", info.Artist)
	assert.Equal(t, ", 1980", info.Year)
	assert.Equal(t, "Harmonix", info.Charter)
	assert.Equal(t, "Rock Band", info.Playlist)
	assert.Equal(t, filepath.Base(root), info.Source)
	assert.Equal(t, []Part{FiveFretGuitar, Harmony}, info.Instruments)
}

func TestReadSongINI_Defaults(t *testing.T) {
	root := t.TempDir()
	path := writeSongINI(t, filepath.Join(root, "pack", "Untitled"), `
[song]
charter = someone
icon = rb3
`)

	info, err := readSongINI(path, root)
	require.NoError(t, err)

	assert.Equal(t, "Untitled", info.Name)
	assert.Equal(t, "someone", info.Charter)
	assert.Equal(t, "rb3", info.Source)
	assert.Empty(t, info.Instruments)
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeSongINI(t, filepath.Join(root, "A"), "[song]\nname = First\ndiff_drums = 2\n")
	second := writeSongINI(t, filepath.Join(root, "B"), "[song]\nname = Second\n")
	// Not a valid audio file: counted as skipped.
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.mp3"), []byte("nope"), 0o644))
	// Ignored entirely.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	store := newTestStore(t)
	scanner := NewScanner(store, WithScanWorkers(2))

	progress := make(chan ScanProgress, 100)
	var phases []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			phases = append(phases, p.Phase)
		}
	}()

	stats, err := scanner.Scan(context.Background(), []string{root}, progress)
	require.NoError(t, err)
	<-done

	assert.Equal(t, ScanStats{Added: 2, Skipped: 1}, stats)
	require.NotEmpty(t, phases)
	assert.Equal(t, PhaseScanning, phases[0])
	assert.Equal(t, PhaseDone, phases[len(phases)-1])

	byName := songsByName(t, store)
	require.Len(t, byName, 2)
	assert.True(t, byName["First"].HasInstrument(FourLaneDrums))

	// Unchanged files are not parsed again.
	stats, err = scanner.Scan(context.Background(), []string{root}, nil)
	require.NoError(t, err)
	assert.Equal(t, ScanStats{Skipped: 1}, stats)

	// A modified song is updated, a removed one is deleted.
	require.NoError(t, os.WriteFile(second, []byte("[song]\nname = Second Take\n"), 0o644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(second, later, later))
	require.NoError(t, os.RemoveAll(filepath.Join(root, "A")))

	stats, err = scanner.Scan(context.Background(), []string{root}, nil)
	require.NoError(t, err)
	assert.Equal(t, ScanStats{Updated: 1, Removed: 1, Skipped: 1}, stats)

	byName = songsByName(t, store)
	require.Len(t, byName, 1)
	assert.Contains(t, byName, "Second Take")
}

func TestScanner_KeepsSongsOutsideSources(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert([]SongInfo{{Path: "/elsewhere/song.ini", Name: "Kept"}}))

	root := t.TempDir()
	stats, err := NewScanner(store).Scan(context.Background(), []string{root}, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Removed)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestScanner_Canceled(t *testing.T) {
	root := t.TempDir()
	writeSongINI(t, filepath.Join(root, "A"), "[song]\nname = First\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(newTestStore(t)).Scan(ctx, []string{root}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnderAny(t *testing.T) {
	sources := []string{"/music/charts"}
	assert.True(t, underAny("/music/charts/a/song.ini", sources))
	assert.False(t, underAny("/music/chartsextra/song.ini", sources))
	assert.False(t, underAny("/other/song.ini", sources))
}
