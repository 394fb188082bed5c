package songsearch

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/songsearch/internal/catalog"
	"github.com/llehouerou/songsearch/internal/logging"
)

func TestSearcher_Refresh(t *testing.T) {
	s, p := newFixtureSearcher()

	got := s.Refresh(catalog.Artist)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, catalog.Artist, p.last)
	assert.Equal(t, []string{"Beyoncé", "Metallica", "Queen", "The Queenies"}, categoryNames(got))
	assert.Equal(t, []FilterToken{{catalog.Artist, ""}}, s.Filters())
	assert.False(t, s.IsUnspecified())
}

func TestSearcher_EmptyQueryReturnsSortedCatalog(t *testing.T) {
	s, p := newFixtureSearcher()

	got := s.Search("  ; ", catalog.Name)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, []string{"A", "B", "D", "P", "Q"}, categoryNames(got))
	assert.Len(t, s.Filters(), 1)
}

func TestSearcher_AppendedFilterReusesPreviousResult(t *testing.T) {
	s, p := newFixtureSearcher()

	got := s.Search("artist:queen", catalog.Name)
	assert.Equal(t, []string{
		"Another One Bites the Dust", "Bohemian Rhapsody", "Play the Game", "Queen of the Night",
	}, names(got))
	artistResult := s.chain[1].result

	got = s.Search("artist:queen;year:1980", catalog.Name)

	assert.Equal(t, []string{"Another One Bites the Dust", "Play the Game"}, names(got))
	assert.Equal(t, 1, p.calls, "catalog must not be queried again")
	assert.Equal(t, []FilterToken{
		{catalog.Name, ""},
		{catalog.Artist, "queen"},
		{catalog.Year, "1980"},
	}, s.Filters())
	assert.Equal(t, artistResult, s.chain[1].result)
}

func TestSearcher_TypingReusesEachKeystroke(t *testing.T) {
	s, p := newFixtureSearcher()

	query := "artist:queen"
	for i := len("artist:q"); i <= len(query); i++ {
		s.Search(query[:i], catalog.Name)
	}

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, []FilterToken{
		{catalog.Name, ""},
		{catalog.Artist, "q"},
		{catalog.Artist, "qu"},
		{catalog.Artist, "que"},
		{catalog.Artist, "quee"},
		{catalog.Artist, "queen"},
	}, s.Filters())

	fresh, _ := newFixtureSearcher()
	assert.Equal(t, fresh.Search(query, catalog.Name), s.Search(query, catalog.Name))
}

func TestSearcher_BackspaceTruncatesChain(t *testing.T) {
	s, p := newFixtureSearcher()
	for _, q := range []string{"artist:q", "artist:qu", "artist:que"} {
		s.Search(q, catalog.Name)
	}

	got := s.Search("artist:qu", catalog.Name)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, []FilterToken{
		{catalog.Name, ""},
		{catalog.Artist, "q"},
		{catalog.Artist, "qu"},
	}, s.Filters())
	assert.Equal(t, []string{
		"Another One Bites the Dust", "Bohemian Rhapsody", "Play the Game", "Queen of the Night",
	}, names(got))
}

func TestSearcher_ChangedFilterRecomputesSuffix(t *testing.T) {
	s, p := newFixtureSearcher()
	s.Search("artist:queen;year:1980", catalog.Name)

	got := s.Search("artist:queen;year:1975", catalog.Name)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, []string{"Bohemian Rhapsody"}, names(got))
	assert.Equal(t, []FilterToken{
		{catalog.Name, ""},
		{catalog.Artist, "queen"},
		{catalog.Year, "1975"},
	}, s.Filters())
}

func TestSearcher_SortChangeInvalidatesChain(t *testing.T) {
	s, p := newFixtureSearcher()
	s.Search("artist:queen", catalog.Name)

	got := s.Search("artist:queen", catalog.Album)

	assert.Equal(t, 2, p.calls)
	assert.Equal(t, catalog.Album, p.last)
	assert.Equal(t, []string{"A Night at the Opera", "Nocturne", "The Game"}, categoryNames(got))
}

func TestSearcher_InstrumentFilterAppliedFirst(t *testing.T) {
	s, p := newFixtureSearcher()

	got := s.Search("artist:metallica;instrument:drums", catalog.Name)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, catalog.Instrument, p.last)
	assert.Equal(t, []string{"FourLaneDrums", "ProDrums"}, categoryNames(got))
	assert.Equal(t, []string{"The Day That Never Comes", "The Day That Never Comes"}, names(got))
	assert.Equal(t, FilterToken{catalog.Instrument, "drums"}, s.Filters()[0])

	// Same filters written in the other order hit the cache.
	again := s.Search("instrument:drums;artist:metallica", catalog.Name)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, got, again)
}

func TestSearcher_ExtendingInstrumentArgumentRebuildsBase(t *testing.T) {
	s, p := newFixtureSearcher()
	s.Search("instrument:g", catalog.Name)

	got := s.Search("instrument:guitar,keys", catalog.Name)

	assert.Equal(t, 2, p.calls)
	assert.Equal(t, []string{"FiveFretGuitar", "Keys"}, categoryNames(got))
	assert.Len(t, s.Filters(), 1)
}

func TestSearcher_FreeText(t *testing.T) {
	s, _ := newFixtureSearcher()

	got := s.Search("artist:queen;the game", catalog.Name)

	require.Len(t, got, 1)
	assert.Equal(t, SearchResultsCategory, got[0].Name)
	assert.Equal(t, []string{"Play the Game"}, names(got))
	assert.True(t, s.IsUnspecified())

	// Free text also matches the artist.
	got = s.Search("artist:queen;nies", catalog.Name)
	assert.Equal(t, []string{"Queen of the Night"}, names(got))

	// Album is not part of free-text matching.
	got = s.Search("artist:queen;opera", catalog.Name)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Songs)

	s.Search("artist:queen", catalog.Name)
	assert.False(t, s.IsUnspecified())
}

func TestSearcher_AddingInstrumentFragmentWidens(t *testing.T) {
	s, _ := newFixtureSearcher()
	s.Search("instrument:e;instrument:bass,", catalog.Name)

	got := s.Search("instrument:e;instrument:bass,k", catalog.Name)

	assert.Equal(t, []string{"FiveFretBass", "Keys"}, categoryNames(got))
}

func TestSearcher_IsUnspecifiedBeforeFirstSearch(t *testing.T) {
	s, _ := newFixtureSearcher()
	assert.True(t, s.IsUnspecified())
}

func TestSearcher_Idempotent(t *testing.T) {
	s, p := newFixtureSearcher()

	first := s.Search("genre:rock;que", catalog.Year)
	second := s.Search("genre:rock;que", catalog.Year)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, p.calls)
}

func TestSearcher_MonotonicNarrowing(t *testing.T) {
	queries := []string{
		"artist:queen;year:1980;name:game",
		"playlist:custom;charter:acai;de",
		"instrument:vocals;genre:r;album:the",
		"source:rb;artist:me",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			s, _ := newFixtureSearcher()
			s.Search(q, catalog.Name)

			for i := 1; i < len(s.chain); i++ {
				prev := songSet(s.chain[i-1].result)
				for song := range songSet(s.chain[i].result) {
					_, ok := prev[song]
					assert.True(t, ok, "step %d (%v) added %s", i, s.chain[i].token, song)
				}
			}
		})
	}
}

func TestSearcher_CacheEquivalence(t *testing.T) {
	queries := []string{
		"artist:queen;year:1980",
		"artist:queen;year:19;name:the",
		"genre:ro;bohemian",
		"instrument:guitar;artist:qu;play",
		"album:game;charter:harmonix",
		"instrument:e;instrument:bass,k",
		"day",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			fresh, _ := newFixtureSearcher()
			want := fresh.Search(q, catalog.Name)

			// Warm a second searcher with every prefix of the query, character
			// by character, then run the full query.
			warm, _ := newFixtureSearcher()
			for i := 1; i < len(q); i++ {
				warm.Search(q[:i], catalog.Name)
			}
			assert.Equal(t, want, warm.Search(q, catalog.Name))

			// And with a longer query sharing the prefix.
			longer, _ := newFixtureSearcher()
			longer.Search(q+"x", catalog.Name)
			assert.Equal(t, want, longer.Search(q, catalog.Name))
		})
	}
}

func TestSearcher_LogsReuse(t *testing.T) {
	var buf bytes.Buffer
	p := &countingProvider{cat: catalog.New(fixtureSongs())}
	s := New(p, WithLogger(logging.New(&buf, slog.LevelDebug)))

	s.Search("artist:queen", catalog.Name)
	s.Search("artist:queen;year:1980", catalog.Name)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "reused=2")
	assert.Contains(t, lines[1], "computed=1")
	assert.Contains(t, lines[1], "component=songsearch")
}

func TestSearcher_InstrumentThenFreeTextListsSongsOnce(t *testing.T) {
	s := New(catalog.New(fixtureSongs()))

	got := s.Search("instrument:e;queen", catalog.Name)

	require.Len(t, got, 1)
	require.NotEmpty(t, got[0].Songs)
	assert.Equal(t, SearchResultsCategory, got[0].Name)
	assert.Len(t, songSet(got), len(got[0].Songs))
}
