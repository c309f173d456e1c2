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
	for _, c := range []lipgloss.Color{
		theme.Primary, theme.Secondary, theme.Foreground, theme.Muted,
		theme.Success, theme.Warning, theme.Error, theme.Border,
	} {
		assert.NotEmpty(t, string(c))
	}
}

func TestDefaultTheme_StatusColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{theme.Primary, theme.Success, theme.Warning, theme.Error} {
		assert.False(t, seen[c], "duplicate colour: %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestDefaultStyles_RenderText(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Title.Render("Pileus"), "Pileus")
	assert.Contains(t, s.Error.Render("boom"), "boom")
}
