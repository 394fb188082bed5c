package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(Browser)

	tests := []struct {
		key      string
		expected Action
	}{
		{"esc", ActionQuit},
		{"ctrl+c", ActionQuit},
		{"enter", ActionSelect},
		{"tab", ActionNextSort},
		{"shift+tab", ActionPrevSort},
		{"up", ActionMoveUp},
		{"ctrl+n", ActionMoveDown},
		{"ctrl+r", ActionRescan},
		{"q", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Resolve(tt.key))
		})
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionMoveUp, []string{"up"}, "Move up", ""},
		{ActionMoveUp, []string{"k"}, "Move up", ""},
	})

	assert.Equal(t, []string{"up", "k"}, r.KeysFor(ActionMoveUp))
	assert.Empty(t, r.KeysFor(ActionRescan))
}

func TestResolver_LastBindingWins(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionSelect, []string{"enter"}, "", ""},
		{ActionQuit, []string{"enter"}, "", ""},
	})
	assert.Equal(t, ActionQuit, r.Resolve("enter"))
}

func TestBrowser_NoPrintableKeys(t *testing.T) {
	for _, b := range Browser {
		for _, k := range b.Keys {
			assert.Greater(t, len([]rune(k)), 1, "key %q would shadow query input", k)
		}
	}
}

func TestHelpLine(t *testing.T) {
	assert.Equal(t, "esc: quit  enter: select  tab: sort  up: move  ctrl+r: rescan", HelpLine(Browser))
	assert.Empty(t, HelpLine(nil))
}
