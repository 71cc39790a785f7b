package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Back.Keys(), "esc")
	assert.Contains(t, km.Submit.Keys(), "enter")
	assert.Contains(t, km.ToggleLLM.Keys(), "tab")
	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "j")
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.Quit))
	assert.True(t, Matches("tab", km.ToggleLLM))
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	assert.Len(t, km.ShortHelp(), 2)
}

func TestResultsHelp(t *testing.T) {
	km := DefaultKeyMap()
	assert.Len(t, km.ResultsHelp(), 3)
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()
	rows := km.FullHelp()
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.NotEmpty(t, row)
	}
}
