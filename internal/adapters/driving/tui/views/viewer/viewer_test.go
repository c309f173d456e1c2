package viewer

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/messages"
)

func TestIndentJSON(t *testing.T) {
	assert.Equal(t, "{\n    \"a\": 1\n}", IndentJSON([]byte(`{"a":1}`)))
	assert.Equal(t, "not json", IndentJSON([]byte("not json")))
}

func TestView_Lifecycle(t *testing.T) {
	v := NewView(nil, messages.ViewOnboardingMenu)
	v.SetDimensions(100, 40)

	v.Start("Users")
	assert.True(t, v.Loading())
	assert.Contains(t, v.View(), "Loading...")

	v.SetJSON([]byte(`{"users":[{"name":"ann"}]}`))
	assert.False(t, v.Loading())
	assert.Contains(t, v.View(), `"name": "ann"`)
	assert.Contains(t, v.View(), "Users")

	v.SetError(errors.New("status 500"))
	assert.EqualError(t, v.Err(), "status 500")
	assert.Contains(t, v.View(), "status 500")

	v.Start("Users")
	assert.NoError(t, v.Err())
}

func TestView_EscGoesBack(t *testing.T) {
	v := NewView(nil, messages.ViewOnboardingMenu)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewOnboardingMenu}, cmd())
}

func TestView_SetDimensions_Minimums(t *testing.T) {
	v := NewView(nil, messages.ViewMenu)

	v.SetDimensions(4, 4)

	assert.Equal(t, 10, v.viewport.Width)
	assert.Equal(t, 3, v.viewport.Height)
}
