// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/styles"
)

// PromptInput wraps a bubbles textinput with a question label above it.
type PromptInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewPromptInput creates a new prompt input component.
func NewPromptInput(s *styles.Styles) *PromptInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &PromptInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the prompt input.
func (p *PromptInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *PromptInput) Update(msg tea.Msg) (*PromptInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the label and the input box.
func (p *PromptInput) View() string {
	label := p.styles.Normal.Render(p.label)
	box := p.styles.InputField.Render(p.textinput.View())
	return lipgloss.JoinVertical(lipgloss.Left, label, box)
}

// SetLabel sets the question shown above the input.
func (p *PromptInput) SetLabel(label string) {
	p.label = label
}

// Label returns the current question.
func (p *PromptInput) Label() string {
	return p.label
}

// Value returns the current input value.
func (p *PromptInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *PromptInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (p *PromptInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// SetWidth sets the width of the input.
func (p *PromptInput) SetWidth(width int) {
	p.width = width
	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *PromptInput) Width() int {
	return p.width
}

// Reset clears the input.
func (p *PromptInput) Reset() {
	p.textinput.Reset()
}
