// Package result shows the outcome of an onboarding request.
package result

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/views/viewer"
	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driving"
)

// View renders an onboarding result and opens the script folder on request.
type View struct {
	styles     *styles.Styles
	onboarding driving.OnboardingService
	viewer     *viewer.View
	result     *domain.OnboardingResult
	err        error
}

// NewView creates a result view.
func NewView(s *styles.Styles, onboarding driving.OnboardingService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:     s,
		onboarding: onboarding,
		viewer:     viewer.NewView(s, messages.ViewOnboardingMenu),
	}
}

// SetResult shows the outcome of a request.
func (v *View) SetResult(result *domain.OnboardingResult, err error) {
	v.result = result
	v.err = err

	switch {
	case err != nil:
		v.viewer.Start("Onboarding failed")
		v.viewer.SetError(err)
	case result.ScriptPath != "":
		v.viewer.Start("Script saved to " + result.ScriptPath)
		v.viewer.SetText(result.Script)
	case result.Script != "":
		v.viewer.Start("Setup script (not saved)")
		v.viewer.SetText(result.Script)
	default:
		v.viewer.Start("Onboarding response")
		v.viewer.SetJSON(result.JSON)
	}
}

// HasScript reports whether a saved script folder can be opened.
func (v *View) HasScript() bool {
	return v.err == nil && v.result != nil && v.result.ScriptPath != ""
}

// Update handles messages for the result view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "o" {
		return v, v.openFolder()
	}

	var cmd tea.Cmd
	v.viewer, cmd = v.viewer.Update(msg)
	return v, cmd
}

func (v *View) openFolder() tea.Cmd {
	if !v.HasScript() || v.onboarding == nil {
		return nil
	}

	path := v.result.ScriptPath
	onboarding := v.onboarding
	return func() tea.Msg {
		return messages.FolderOpened{Path: filepath.Dir(path), Err: onboarding.OpenFolder(path)}
	}
}

// View renders the result.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.viewer.View())

	if v.result != nil && v.result.Record.Error != "" {
		b.WriteString(v.styles.Warning.Render("Warning: " + v.result.Record.Error))
		b.WriteString("\n")
	}
	if v.HasScript() {
		b.WriteString(v.styles.Help.Render("Do you want to open the folder? Press [o]."))
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.viewer.SetDimensions(width, height-1)
}
