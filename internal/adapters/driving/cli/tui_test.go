package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui"
)

func TestTUICmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescription(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "interactive menu")
	assert.Contains(t, tuiCmd.Long, "Controls:")
}

func TestTUICmd_HelpOutput(t *testing.T) {
	out, err := execute("", "tui", "--help")

	assert.NoError(t, err)
	assert.Contains(t, out, "Launch the interactive menu")
}

func TestTUICmd_IsRootDefault(t *testing.T) {
	assert.NotNil(t, rootCmd.RunE)
	assert.Equal(t, "true", rootCmd.Annotations[annotationCredentials])
}

func TestTUICmd_ErrorsWithoutServices(t *testing.T) {
	_, restore := setupTestServices()
	defer restore()
	authService = nil

	_, err := execute("", "tui")

	require.Error(t, err)
	assert.ErrorIs(t, err, tui.ErrMissingAuthService)
}

func TestTUICmd_RunsAfterHelp(t *testing.T) {
	_, restore := setupTestServices()
	defer restore()
	authService = nil

	out, err := execute("", "tui", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")

	_, err = execute("", "tui")

	require.Error(t, err, "a previous --help must not turn the next run into help output")
	assert.ErrorIs(t, err, tui.ErrMissingAuthService)
}

func TestRecoverTUI_ReturnsPanicAsError(t *testing.T) {
	var stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetErr(&stderr)

	run := func() (err error) {
		defer recoverTUI(cmd, &err)
		panic("view index out of range")
	}
	err := run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "view index out of range")
	assert.Contains(t, stderr.String(), "Panic in TUI: view index out of range")
	assert.Contains(t, stderr.String(), "Stack trace:")
}

func TestRecoverTUI_KeepsReturnedError(t *testing.T) {
	cmd := &cobra.Command{}
	want := errors.New("TUI error")

	run := func() (err error) {
		defer recoverTUI(cmd, &err)
		return want
	}

	assert.Equal(t, want, run())
}
