package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/songsearch/internal/catalog"
)

type jsonSong struct {
	Path        string   `json:"path"`
	Name        string   `json:"name"`
	Artist      string   `json:"artist,omitempty"`
	Album       string   `json:"album,omitempty"`
	Genre       string   `json:"genre,omitempty"`
	Year        string   `json:"year,omitempty"`
	Charter     string   `json:"charter,omitempty"`
	Playlist    string   `json:"playlist,omitempty"`
	Source      string   `json:"source,omitempty"`
	Instruments []string `json:"instruments,omitempty"`
}

type jsonCategory struct {
	Name  string     `json:"name"`
	Songs []jsonSong `json:"songs"`
}

func toJSONCategories(categories []catalog.Category) []jsonCategory {
	out := make([]jsonCategory, len(categories))
	for i, c := range categories {
		songs := make([]jsonSong, len(c.Songs))
		for j, s := range c.Songs {
			songs[j] = jsonSong{
				Path:     s.Path,
				Name:     s.Name.Str,
				Artist:   s.Artist.Str,
				Album:    s.Album.Str,
				Genre:    s.Genre.Str,
				Year:     s.Year,
				Charter:  s.Charter.Str,
				Playlist: s.Playlist.Str,
				Source:   s.Source.Str,
			}
			for _, ins := range s.Instruments() {
				songs[j].Instruments = append(songs[j].Instruments, ins.String())
			}
		}
		out[i] = jsonCategory{Name: c.Name, Songs: songs}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeLine(w io.Writer, s string) {
	fmt.Fprintln(w, s)
}

// writeCategories prints categories as indented song lists, stopping after
// limit songs when limit is positive.
func writeCategories(w io.Writer, categories []catalog.Category, limit int) {
	printed := 0
	for _, c := range categories {
		if limit > 0 && printed >= limit {
			break
		}
		fmt.Fprintf(w, "%s (%s)\n", c.Name, humanize.Comma(int64(len(c.Songs))))
		for _, s := range c.Songs {
			if limit > 0 && printed >= limit {
				break
			}
			fmt.Fprintf(w, "  %s\n", songLine(s))
			printed++
		}
	}
	writeLine(w, summary(categories))
}

func songLine(s *catalog.Song) string {
	parts := []string{s.String()}
	if s.Album.Str != "" {
		parts = append(parts, s.Album.Str)
	}
	if s.Year != "" {
		parts = append(parts, s.Year)
	}
	return strings.Join(parts, " | ")
}

func summary(categories []catalog.Category) string {
	return humanize.Comma(int64(catalog.CountSongs(categories))) + " songs in " +
		humanize.Comma(int64(len(categories))) + " categories"
}
