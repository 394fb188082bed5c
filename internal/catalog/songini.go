package catalog

import (
	"path/filepath"
	"strconv"

	"github.com/go-ini/ini"
)

const songININame = "song.ini"

// iniInstruments maps song.ini difficulty keys to instruments. A part is
// present when its difficulty is zero or more; -1 marks a missing part.
var iniInstruments = []struct {
	key        string
	instrument Part
}{
	{"diff_guitar", FiveFretGuitar},
	{"diff_bass", FiveFretBass},
	{"diff_rhythm", FiveFretRhythm},
	{"diff_guitar_coop", FiveFretCoopGuitar},
	{"diff_keys", Keys},
	{"diff_guitarghl", SixFretGuitar},
	{"diff_bassghl", SixFretBass},
	{"diff_rhythm_ghl", SixFretRhythm},
	{"diff_guitar_coop_ghl", SixFretCoopGuitar},
	{"diff_drums", FourLaneDrums},
	{"diff_drums_real", ProDrums},
	{"diff_drums_5lane", FiveLaneDrums},
	{"diff_guitar_real", ProGuitar17Fret},
	{"diff_guitar_real_22", ProGuitar22Fret},
	{"diff_bass_real", ProBass17Fret},
	{"diff_bass_real_22", ProBass22Fret},
	{"diff_keys_real", ProKeys},
	{"diff_vocals", Vocals},
	{"diff_vocals_harm", Harmony},
	{"diff_band", Band},
}

// readSongINI parses a chart folder's song.ini. Section and key names are
// matched case-insensitively.
func readSongINI(path, source string) (SongInfo, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return SongInfo{}, err
	}
	sec := cfg.Section("song")

	songDir := filepath.Dir(path)
	info := SongInfo{
		Name:     sec.Key("name").MustString(filepath.Base(songDir)),
		Artist:   sec.Key("artist").String(),
		Album:    sec.Key("album").String(),
		Genre:    sec.Key("genre").String(),
		Year:     sec.Key("year").String(),
		Charter:  sec.Key("charter").String(),
		Playlist: sec.Key("playlist").String(),
		Source:   sec.Key("icon").String(),
	}
	if info.Charter == "" {
		info.Charter = sec.Key("frets").String()
	}
	if info.Playlist == "" {
		info.Playlist = filepath.Base(filepath.Dir(songDir))
	}
	if info.Source == "" {
		info.Source = sourceName(source)
	}

	for _, part := range iniInstruments {
		if !sec.HasKey(part.key) {
			continue
		}
		diff, err := strconv.Atoi(sec.Key(part.key).String())
		if err == nil && diff >= 0 {
			info.Instruments = append(info.Instruments, part.instrument)
		}
	}
	return info, nil
}
