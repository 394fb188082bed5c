package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles of the browser.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Purple - cursor row, active sort
	Secondary lipgloss.Color // Gold/orange - category headers

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Song names
	FgMuted  lipgloss.Color // Artists
	FgSubtle lipgloss.Color // Hints, counts

	// Backgrounds
	BgCursor lipgloss.Color // Cursor row highlight

	Border lipgloss.Color

	// Status colors
	Success lipgloss.Color // Scan results
	Error   lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base     lipgloss.Style // Default text
	Muted    lipgloss.Style // Dimmed text
	Subtle   lipgloss.Style // Very dim text
	Title    lipgloss.Style // Bold, bright
	Category lipgloss.Style // Category header rows
	Active   lipgloss.Style // Active sort, ranked mode marker
	Cursor   lipgloss.Style // Cursor background highlight
	Success  lipgloss.Style
	Error    lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border: lipgloss.Color("#585858"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Category: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),
		Active: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.Primary),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
	}
}
