// Package browser is the interactive song browser: a query line over the
// catalog grouped by the current sort, narrowed on every keystroke.
package browser

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/songsearch/internal/catalog"
	"github.com/llehouerou/songsearch/internal/errmsg"
	"github.com/llehouerou/songsearch/internal/keymap"
	"github.com/llehouerou/songsearch/internal/logging"
	"github.com/llehouerou/songsearch/internal/songsearch"
)

// RescanFunc rescans the library and returns the stored songs.
type RescanFunc func() ([]*catalog.Song, catalog.ScanStats, error)

// ChangeFunc is called after the query or the sort changed.
type ChangeFunc func(query string, sort catalog.Attribute)

// ScanDoneMsg is emitted when a rescan started with ctrl+r finishes.
type ScanDoneMsg struct {
	Songs []*catalog.Song
	Stats catalog.ScanStats
	Err   error
}

var keys = keymap.NewResolver(keymap.Browser)

// row is one line of the result list: a category header when song is nil.
type row struct {
	category string
	count    int
	song     *catalog.Song
}

// Model is the browser state. The Searcher and Catalog are shared between
// copies of the model; bubbletea serializes Update calls.
type Model struct {
	searcher *songsearch.Searcher
	catalog  *catalog.Catalog
	rescan   RescanFunc
	onChange ChangeFunc
	logger   *slog.Logger

	input      textinput.Model
	sort       catalog.Attribute
	categories []catalog.Category
	rows       []row

	cursor int
	offset int
	width  int
	height int

	scanning bool
	status   string
	err      string
	selected *catalog.Song
}

// Option configures a Model.
type Option func(*Model)

// WithRescan enables ctrl+r to rescan the library.
func WithRescan(fn RescanFunc) Option {
	return func(m *Model) {
		m.rescan = fn
	}
}

// WithQuery starts the browser with query already typed.
func WithQuery(query string) Option {
	return func(m *Model) {
		m.input.SetValue(query)
	}
}

// WithOnChange registers fn to be called when the query or sort changes.
func WithOnChange(fn ChangeFunc) Option {
	return func(m *Model) {
		m.onChange = fn
	}
}

// WithLogger sets the browser logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logging.Default(logger).With("component", "browser")
	}
}

// New creates a browser over cat sorted by sort, showing the whole catalog.
func New(searcher *songsearch.Searcher, cat *catalog.Catalog, sort catalog.Attribute, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "artist:queen; year:1980"
	ti.CharLimit = 256
	ti.Focus()

	m := Model{
		searcher: searcher,
		catalog:  cat,
		logger:   logging.Discard(),
		input:    ti,
		sort:     sort,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.setResults(searcher.Refresh(sort))
	if m.input.Value() != "" {
		m.setResults(searcher.Search(m.input.Value(), sort))
	}
	return m
}

// Selected returns the song chosen with enter, if any.
func (m Model) Selected() *catalog.Song {
	return m.selected
}

// Sort returns the current sort attribute.
func (m Model) Sort() catalog.Attribute {
	return m.sort
}

// Query returns the current query text.
func (m Model) Query() string {
	return m.input.Value()
}

// Categories returns the categories currently displayed.
func (m Model) Categories() []catalog.Category {
	return m.categories
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		m.adjustOffset()
		return m, nil

	case ScanDoneMsg:
		m.handleScanDone(msg)
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.search()
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return true, tea.Quit

	case keymap.ActionSelect:
		if m.cursor < len(m.rows) && m.rows[m.cursor].song != nil {
			m.selected = m.rows[m.cursor].song
			return true, tea.Quit
		}
		return true, nil

	case keymap.ActionNextSort:
		m.cycleSort(1)
	case keymap.ActionPrevSort:
		m.cycleSort(-1)
	case keymap.ActionMoveUp:
		m.moveCursor(-1)
	case keymap.ActionMoveDown:
		m.moveCursor(1)
	case keymap.ActionPageUp:
		m.moveCursor(-m.visibleRows())
	case keymap.ActionPageDown:
		m.moveCursor(m.visibleRows())
	case keymap.ActionRescan:
		return true, m.startRescan()
	default:
		return false, nil
	}
	return true, nil
}

// cycleSort moves to the next sortable attribute in declaration order.
// Unspecified is not a sort.
func (m *Model) cycleSort(step int) {
	attrs := catalog.Attributes()[1:]
	idx := 0
	for i, a := range attrs {
		if a == m.sort {
			idx = i
			break
		}
	}
	idx = (idx + step + len(attrs)) % len(attrs)
	m.sort = attrs[idx]
	m.search()
}

func (m *Model) search() {
	m.setResults(m.searcher.Search(m.input.Value(), m.sort))
	if m.onChange != nil {
		m.onChange(m.input.Value(), m.sort)
	}
}

func (m *Model) setResults(categories []catalog.Category) {
	rows := make([]row, 0, len(categories)+catalog.CountSongs(categories))
	for _, c := range categories {
		rows = append(rows, row{category: c.Name, count: len(c.Songs)})
		for _, s := range c.Songs {
			rows = append(rows, row{category: c.Name, song: s})
		}
	}
	m.categories = categories
	m.rows = rows
	m.cursor = 0
	m.offset = 0
	m.moveCursor(0)
}

// moveCursor moves by delta rows, landing on the nearest song row in the
// direction of travel.
func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	target := min(max(m.cursor+delta, 0), len(m.rows)-1)
	step := 1
	if delta < 0 {
		step = -1
	}
	for i := target; i >= 0 && i < len(m.rows); i += step {
		if m.rows[i].song != nil {
			m.cursor = i
			m.adjustOffset()
			return
		}
	}
	m.adjustOffset()
}

func (m *Model) adjustOffset() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	// Keep the header of the first visible song's category on screen.
	if visible > 1 && m.offset > 0 && m.offset == m.cursor && m.rows[m.offset-1].song == nil {
		m.offset--
	}
}

func (m *Model) startRescan() tea.Cmd {
	if m.rescan == nil || m.scanning {
		return nil
	}
	m.scanning = true
	m.status = "Scanning library..."
	m.err = ""
	rescan := m.rescan
	return func() tea.Msg {
		songs, stats, err := rescan()
		return ScanDoneMsg{Songs: songs, Stats: stats, Err: err}
	}
}

func (m *Model) handleScanDone(msg ScanDoneMsg) {
	m.scanning = false
	if msg.Err != nil {
		m.status = ""
		m.err = errmsg.Format(errmsg.OpCatalogScan, msg.Err)
		m.logger.Error("rescan failed", "error", msg.Err)
		return
	}

	m.catalog.Replace(msg.Songs)
	m.searcher.Refresh(m.sort)
	m.search()

	m.status = fmt.Sprintf("Scan complete: %s added, %s updated, %s removed",
		humanize.Comma(int64(msg.Stats.Added)),
		humanize.Comma(int64(msg.Stats.Updated)),
		humanize.Comma(int64(msg.Stats.Removed)))
	m.logger.Info("rescan complete",
		"songs", len(msg.Songs),
		"added", msg.Stats.Added,
		"updated", msg.Stats.Updated,
		"removed", msg.Stats.Removed)
}
