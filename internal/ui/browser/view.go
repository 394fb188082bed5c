package browser

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/songsearch/internal/catalog"
	"github.com/llehouerou/songsearch/internal/keymap"
	"github.com/llehouerou/songsearch/internal/ui/render"
	"github.com/llehouerou/songsearch/internal/ui/styles"
)

// header, input, separator, status and help lines.
const chromeHeight = 5

var helpText = keymap.HelpLine(keymap.Browser)

func (m Model) visibleRows() int {
	return max(m.height-chromeHeight, 0)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	lines := make([]string, 0, m.height)
	lines = append(lines,
		m.headerLine(),
		m.input.View(),
		styles.T().S().Subtle.Render(render.Separator(m.width)),
	)

	visible := m.visibleRows()
	if len(m.rows) == 0 {
		lines = append(lines, styles.T().S().Subtle.Render(m.emptyMessage()))
	} else {
		end := min(m.offset+visible, len(m.rows))
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.rowLine(m.rows[i], i == m.cursor))
		}
	}
	for len(lines) < visible+3 {
		lines = append(lines, "")
	}

	lines = append(lines, m.statusLine(), styles.T().S().Subtle.Render(render.Truncate(helpText, m.width)))
	return strings.Join(lines, "\n")
}

func (m Model) headerLine() string {
	s := styles.T().S()

	left := styles.Banner("songsearch") + s.Muted.Render("  sort: ") + s.Active.Render(m.sort.Title())
	if m.input.Value() != "" && m.searcher.IsUnspecified() {
		left += s.Muted.Render("  ") + s.Active.Render("ranked")
	}

	right := s.Subtle.Render(countSummary(m.categories))
	return render.Row(left, right, m.width)
}

func countSummary(categories []catalog.Category) string {
	songs := catalog.CountSongs(categories)
	songWord := "songs"
	if songs == 1 {
		songWord = "song"
	}
	catWord := "categories"
	if len(categories) == 1 {
		catWord = "category"
	}
	return humanize.Comma(int64(songs)) + " " + songWord + " in " +
		humanize.Comma(int64(len(categories))) + " " + catWord
}

func (m Model) rowLine(r row, isCursor bool) string {
	s := styles.T().S()

	if r.song == nil {
		return s.Category.Render(render.Truncate(r.category, m.width-8)) +
			s.Subtle.Render(" ("+humanize.Comma(int64(r.count))+")")
	}

	prefix := "  "
	if isCursor {
		prefix = "> "
	}
	innerW := max(m.width-len(prefix), 1)
	line := render.Row(r.song.Name.Str, s.Muted.Render(render.Truncate(r.song.Artist.Str, innerW/3)), innerW)
	if isCursor {
		return s.Cursor.Render(prefix + line)
	}
	return s.Base.Render(prefix + line)
}

func (m Model) statusLine() string {
	s := styles.T().S()
	switch {
	case m.err != "":
		return s.Error.Render(render.Truncate(m.err, m.width))
	case m.status != "":
		return s.Success.Render(render.Truncate(m.status, m.width))
	default:
		return ""
	}
}

func (m Model) emptyMessage() string {
	switch {
	case m.scanning:
		return "Scanning..."
	case m.input.Value() != "":
		return "No matches"
	default:
		return "No songs. Press ctrl+r to scan the library."
	}
}
