// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

// Status bar states.
const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateNotice  State = "notice"
	StateError   State = "error"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	state   State
	message string
	hints   []key.Binding
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Bar{
		styles: s,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateWorking:
		if b.message != "" {
			return b.styles.Muted.Render(b.message)
		}
		return b.styles.Muted.Render("Working...")
	case StateNotice:
		return b.styles.Warning.Render(b.message)
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render(fmt.Sprintf("Error: %s", b.message))
		}
		return b.styles.Error.Render("Error")
	case StateReady:
		if b.message != "" {
			return b.styles.Success.Render(b.message)
		}
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.hints))
	for _, binding := range b.hints {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return b.styles.Help.Render(strings.Join(hints, "  "))
}

// SetState sets the state and message together.
func (b *Bar) SetState(state State, message string) {
	b.state = state
	b.message = message
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetHints sets the keybinding hints shown on the right.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear resets the status bar to default state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
