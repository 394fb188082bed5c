// Package keymap defines the browser key bindings and resolves key
// presses to actions.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit     Action = "quit"
	ActionSelect   Action = "select"
	ActionNextSort Action = "next_sort"
	ActionPrevSort Action = "prev_sort"
	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"
	ActionPageUp   Action = "page_up"
	ActionPageDown Action = "page_down"
	ActionRescan   Action = "rescan"
)
