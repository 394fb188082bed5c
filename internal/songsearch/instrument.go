package songsearch

import (
	"strings"

	"github.com/llehouerou/songsearch/internal/catalog"
)

// FilterInstruments keeps the categories named after an instrument that
// matches the argument. The argument is a comma-separated list of
// fragments; an instrument matches when its name contains any fragment,
// ignoring case. Fragments combine as a union. An argument without any
// non-empty fragment matches every instrument.
//
// The result is never nil.
func FilterInstruments(categories []catalog.Category, argument string) []catalog.Category {
	matched := matchInstruments(argument)

	result := make([]catalog.Category, 0, len(categories))
	for _, cat := range categories {
		if _, ok := matched[cat.Name]; ok {
			result = append(result, cat)
		}
	}
	return result
}

// matchInstruments returns the names of the instruments matched by a
// comma-separated fragment list.
func matchInstruments(argument string) map[string]struct{} {
	fragments := instrumentFragments(argument)

	matched := make(map[string]struct{})
	for _, ins := range catalog.Instruments() {
		name := ins.String()
		lower := strings.ToLower(name)
		if len(fragments) == 0 {
			matched[name] = struct{}{}
			continue
		}
		for _, f := range fragments {
			if strings.Contains(lower, f) {
				matched[name] = struct{}{}
				break
			}
		}
	}
	return matched
}

// instrumentFragments splits an instrument argument into its lowercased,
// non-empty fragments.
func instrumentFragments(argument string) []string {
	var fragments []string
	for f := range strings.SplitSeq(argument, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			fragments = append(fragments, f)
		}
	}
	return fragments
}
