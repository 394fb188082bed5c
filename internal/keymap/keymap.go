package keymap

import "strings"

// Binding maps keys to an action. Short is the label shown in the help
// line; bindings without one are not shown.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Short       string
}

// Browser contains the song browser bindings. Printable keys are left to
// the query input.
var Browser = []Binding{
	{ActionQuit, []string{"esc", "ctrl+c"}, "Quit", "quit"},
	{ActionSelect, []string{"enter"}, "Print the song path and quit", "select"},
	{ActionNextSort, []string{"tab"}, "Next sort attribute", "sort"},
	{ActionPrevSort, []string{"shift+tab"}, "Previous sort attribute", ""},
	{ActionMoveUp, []string{"up", "ctrl+p"}, "Move up", "move"},
	{ActionMoveDown, []string{"down", "ctrl+n"}, "Move down", ""},
	{ActionPageUp, []string{"pgup"}, "Page up", ""},
	{ActionPageDown, []string{"pgdown"}, "Page down", ""},
	{ActionRescan, []string{"ctrl+r"}, "Rescan library", "rescan"},
}

// HelpLine renders the bindings that have a short label as
// "key: label" pairs, using the first key of each.
func HelpLine(bindings []Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if b.Short == "" || len(b.Keys) == 0 {
			continue
		}
		parts = append(parts, b.Keys[0]+": "+b.Short)
	}
	return strings.Join(parts, "  ")
}
