// Package render provides text layout helpers for the terminal UI.
package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters and invalid bytes, which song
// metadata sometimes carries, and turns non-breaking spaces into spaces.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == unicode.ReplacementChar:
			return -1
		case r == '\u00a0':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}

// Truncate shortens s to maxWidth cells, adding an ellipsis if truncated.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// Row lays out left and right so the result is width cells wide. left is
// truncated first when both do not fit; both may carry ANSI styling.
func Row(left, right string, width int) string {
	rightWidth := lipgloss.Width(right)
	if avail := max(width-rightWidth-1, 1); lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, avail, "…")
	}
	gap := max(width-lipgloss.Width(left)-rightWidth, 1)
	return left + strings.Repeat(" ", gap) + right
}

// Pad fills s with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Separator creates a horizontal separator line of the specified width.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}
