package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryInput(t *testing.T) {
	qi := NewQueryInput(nil)
	require.NotNil(t, qi)

	assert.Empty(t, qi.Value())
	assert.True(t, qi.Focused())
}

func TestQueryInput_SetValue(t *testing.T) {
	qi := NewQueryInput(nil)
	qi.SetValue("what is a vector index")

	assert.Equal(t, "what is a vector index", qi.Value())
}

func TestQueryInput_FocusBlur(t *testing.T) {
	qi := NewQueryInput(nil)

	qi.Blur()
	assert.False(t, qi.Focused())

	qi.Focus()
	assert.True(t, qi.Focused())
}

func TestQueryInput_TypingUpdatesValue(t *testing.T) {
	qi := NewQueryInput(nil)

	qi, _ = qi.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})

	assert.Equal(t, "hi", qi.Value())
}

func TestQueryInput_SetWidth(t *testing.T) {
	qi := NewQueryInput(nil)

	qi.SetWidth(120)
	assert.Equal(t, 120, qi.Width())

	qi.SetWidth(5)
	assert.Equal(t, 5, qi.Width())
}

func TestQueryInput_Reset(t *testing.T) {
	qi := NewQueryInput(nil)
	qi.SetValue("something")

	qi.Reset()

	assert.Empty(t, qi.Value())
}

func TestQueryInput_ViewRenders(t *testing.T) {
	qi := NewQueryInput(nil)
	assert.Contains(t, qi.View(), "Query:")
}
