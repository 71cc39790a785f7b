package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()
	require.NotNil(t, theme)

	assert.NotEmpty(t, theme.Primary)
	assert.NotEmpty(t, theme.Error)
	assert.NotEmpty(t, theme.Success)
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)
	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestNewStyles_CustomTheme(t *testing.T) {
	theme := &Theme{Primary: lipgloss.Color("#FFFFFF")}
	s := NewStyles(theme)

	assert.Equal(t, lipgloss.Color("#FFFFFF"), s.Theme().Primary)
}

func TestDefaultStyles_RenderDoesNotPanic(t *testing.T) {
	s := DefaultStyles()

	assert.NotPanics(t, func() {
		_ = s.Title.Render("title")
		_ = s.Error.Render("error")
		_ = s.Answer.Render("answer")
		_ = s.StatusBar.Render("status")
	})
}
