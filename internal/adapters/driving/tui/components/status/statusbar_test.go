package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/keymap"
)

func TestNewBar(t *testing.T) {
	b := NewBar(nil)

	assert.NotNil(t, b.styles)
	assert.Equal(t, StateReady, b.State())
	assert.Contains(t, b.View(), "Ready")
}

func TestBar_States(t *testing.T) {
	tests := []struct {
		state   State
		message string
		want    string
	}{
		{StateWorking, "", "Working..."},
		{StateWorking, "Authenticating...", "Authenticating..."},
		{StateNotice, "Feature not implemented yet.", "Feature not implemented yet."},
		{StateError, "authentication invalid", "Error: authentication invalid"},
		{StateError, "", "Error"},
		{StateReady, "Authentication successful.", "Authentication successful."},
	}

	for _, tt := range tests {
		t.Run(string(tt.state)+"/"+tt.message, func(t *testing.T) {
			b := NewBar(nil)
			b.SetState(tt.state, tt.message)

			assert.Contains(t, b.View(), tt.want)
			assert.Equal(t, tt.message, b.Message())
		})
	}
}

func TestBar_HintsAndClear(t *testing.T) {
	b := NewBar(nil)
	b.SetWidth(120)
	b.SetHints(keymap.DefaultKeyMap().ResultHelp(true))
	b.SetState(StateError, "boom")

	assert.Contains(t, b.View(), "[o] open folder")

	b.Clear()
	assert.Equal(t, StateReady, b.State())
	assert.Empty(t, b.Message())
}
