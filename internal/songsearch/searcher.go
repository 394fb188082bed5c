// Package songsearch filters a song catalog with attribute-aware queries
// such as "artist:queen; year:1980".
//
// A Searcher keeps the chain of intermediate results of its previous
// search. Each filter narrows the result of the filter before it, so when
// the next query only extends the previous one (the user typed another
// character, or appended a filter) the longest unchanged prefix of the
// chain is reused and only the remaining filters are applied.
package songsearch

import (
	"log/slog"
	"runtime"
	"slices"

	"github.com/llehouerou/songsearch/internal/catalog"
	"github.com/llehouerou/songsearch/internal/logging"
)

// Provider returns the catalog sorted and grouped for an attribute.
type Provider interface {
	Sorted(attr catalog.Attribute) []catalog.Category
}

// entry is one cached step: token applied to the previous entry's result
// (or to the sorted catalog for the first entry) gives result.
type entry struct {
	token  FilterToken
	result []catalog.Category
}

// Searcher is the incremental search engine. It is not safe for
// concurrent use; callers serialize Refresh and Search.
type Searcher struct {
	provider Provider
	chain    []entry
	workers  int
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logging.Default(logger).With("component", "songsearch")
	}
}

// WithWorkers bounds the goroutines used to rank free-text matches.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New creates a Searcher over provider with an empty chain.
func New(provider Provider, opts ...Option) *Searcher {
	s := &Searcher{
		provider: provider,
		workers:  runtime.GOMAXPROCS(0),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh drops the chain and returns the catalog sorted by sort, which
// becomes the only cached entry.
func (s *Searcher) Refresh(sort catalog.Attribute) []catalog.Category {
	songs := s.provider.Sorted(sort)
	s.chain = []entry{{token: FilterToken{Attribute: sort}, result: songs}}
	return songs
}

// Search runs query over the catalog sorted by sort, reusing the cached
// steps of the previous call that still apply.
func (s *Searcher) Search(query string, sort catalog.Attribute) []catalog.Category {
	filters := effectiveFilters(Tokenize(query), sort)

	reused, consumed := reusablePrefix(filters, s.chain)

	var chain []entry
	if reused == 0 {
		chain = make([]entry, 0, len(filters))
		chain = append(chain, entry{token: filters[0], result: s.base(filters[0])})
		reused = 1
	} else {
		chain = make([]entry, consumed, consumed+len(filters)-reused)
		copy(chain, s.chain[:consumed])
	}

	for _, f := range filters[reused:] {
		prev := chain[len(chain)-1].result
		chain = append(chain, entry{token: f, result: s.apply(f, prev)})
	}

	s.logger.Debug("search",
		"query", query,
		"sort", sort,
		"reused", consumed,
		"computed", len(chain)-consumed,
		"chain", len(chain))

	s.chain = chain
	return chain[len(chain)-1].result
}

// IsUnspecified reports whether the current result comes from a free-text
// search. An empty chain counts as free text.
func (s *Searcher) IsUnspecified() bool {
	if len(s.chain) == 0 {
		return true
	}
	return s.chain[len(s.chain)-1].token.Attribute == catalog.Unspecified
}

// Filters returns the tokens of the cached chain, sort entry first.
func (s *Searcher) Filters() []FilterToken {
	tokens := make([]FilterToken, len(s.chain))
	for i, e := range s.chain {
		tokens[i] = e.token
	}
	return tokens
}

// effectiveFilters prepends the sort token. An instrument filter anywhere
// in tokens replaces the sort token so it is applied to the whole
// catalog; only the first one is moved.
func effectiveFilters(tokens []FilterToken, sort catalog.Attribute) []FilterToken {
	filters := make([]FilterToken, 0, len(tokens)+1)
	filters = append(filters, FilterToken{Attribute: sort})
	filters = append(filters, tokens...)

	for i := 1; i < len(filters); i++ {
		if filters[i].Attribute == catalog.Instrument {
			filters[0] = filters[i]
			filters = slices.Delete(filters, i, i+1)
			break
		}
	}
	return filters
}

// reusablePrefix walks filters and the previous chain in lock-step. For
// each filter it skips the chain entries the filter extends (the user
// only typed more characters); the filter is
// reusable when the last skipped entry is exactly the filter. It returns
// the number of reusable filters and the number of chain entries kept.
func reusablePrefix(filters []FilterToken, chain []entry) (reused, consumed int) {
	for reused < len(filters) && consumed < len(chain) {
		for filters[reused].extends(chain[consumed].token) {
			consumed++
			if consumed == len(chain) {
				break
			}
		}

		if consumed == 0 || !filters[reused].Equal(chain[consumed-1].token) {
			break
		}
		reused++
	}
	return reused, consumed
}

// base computes the first entry from the provider.
func (s *Searcher) base(f FilterToken) []catalog.Category {
	songs := s.provider.Sorted(f.Attribute)
	if f.Attribute == catalog.Instrument {
		songs = FilterInstruments(songs, f.Argument)
	}
	return songs
}

// apply narrows input with a single filter.
func (s *Searcher) apply(f FilterToken, input []catalog.Category) []catalog.Category {
	switch f.Attribute {
	case catalog.Unspecified:
		return RankedSearch(input, f.Argument, s.workers)
	case catalog.Instrument:
		return FilterInstruments(input, f.Argument)
	default:
		return filterCategories(input, f)
	}
}
