package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"select", km.Select, []string{"enter"}},
		{"filter", km.Filter, []string{"/"}},
		{"delete", km.Delete, []string{"d", "delete"}},
		{"confirm", km.Confirm, []string{"y"}},
		{"cancel", km.Cancel, []string{"n", "esc"}},
		{"reload", km.Reload, []string{"r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()
	assert.Len(t, help, 2)
}

func TestKeyMap_ReportsHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ReportsHelp()
	require.Len(t, help, 5)
	assert.Equal(t, "open", help[0].Help().Desc)
}

func TestKeyMap_ConfirmHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ConfirmHelp()
	require.Len(t, help, 2)
	assert.Equal(t, "y", help[0].Help().Key)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()
	require.Len(t, groups, 3)
	for _, g := range groups {
		assert.Len(t, g, 3)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("d", km.Delete))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("", km.Select))
}
