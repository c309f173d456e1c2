// Package onboard provides the onboarding form view for the TUI.
package onboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/form"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/styles"
)

// Mode selects the questionnaire.
type Mode int

// Available modes.
const (
	ModeAWS Mode = iota
	ModeMSP
)

// View steps through a questionnaire one field at a time.
type View struct {
	styles  *styles.Styles
	input   *input.PromptInput
	mode    Mode
	fields  []form.Field
	index   int
	answers form.Answers
	errMsg  string
	done    bool
	width   int
	height  int
}

// NewView creates an onboarding form.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		input:  input.NewPromptInput(s),
		width:  80,
		height: 24,
	}
}

// Reset starts a new questionnaire.
func (v *View) Reset(mode Mode, defaultRegion string) {
	v.mode = mode
	if mode == ModeMSP {
		v.fields = form.MSPFields(defaultRegion)
	} else {
		v.fields = form.AWSFields()
	}
	v.index = 0
	v.answers = form.Answers{}
	v.errMsg = ""
	v.done = false
	v.input.Reset()
	v.input.SetLabel(v.fields[0].Label(v.answers))
}

// Init focuses the input.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Focus(), v.input.Init())
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewOnboardingMenu} }
		case "enter":
			return v, v.submitField()
		}
	}

	if v.done {
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submitField checks the current answer and advances.
func (v *View) submitField() tea.Cmd {
	if v.done || len(v.fields) == 0 {
		return nil
	}

	field := v.fields[v.index]
	value, err := field.Check(v.input.Value(), v.answers)
	if err != nil {
		v.errMsg = err.Error()
		v.input.Reset()
		return nil
	}

	v.answers[field.Key] = value
	v.errMsg = ""
	v.input.Reset()
	v.index++

	if v.index < len(v.fields) {
		v.input.SetLabel(v.fields[v.index].Label(v.answers))
		return nil
	}

	v.done = true
	return v.submission()
}

func (v *View) submission() tea.Cmd {
	if v.mode == ModeAWS {
		req := form.AWSRequest(v.answers)
		return func() tea.Msg { return messages.OnboardingSubmitted{AWS: &req} }
	}

	req, err := form.MSPRequest(v.answers)
	if err != nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: err} }
	}
	return func() tea.Msg { return messages.OnboardingSubmitted{MSP: &req} }
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	title := "Onboard AWS Account"
	if v.mode == ModeMSP {
		title = "Onboard AWS Account for MSP"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Step %d of %d", min(v.index+1, len(v.fields)), len(v.fields))))
	b.WriteString("\n\n")

	for _, f := range v.fields[:v.index] {
		answer := v.answers[f.Key]
		if answer == "" {
			answer = "(empty)"
		}
		b.WriteString(v.styles.Muted.Render(strings.TrimSpace(f.Label(v.answers)) + " " + answer))
		b.WriteString("\n")
	}

	if v.done {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Submitting..."))
		b.WriteString("\n")
		return b.String()
	}

	if v.index > 0 {
		b.WriteString("\n")
	}
	b.WriteString(v.input.View())
	b.WriteString("\n")
	if v.errMsg != "" {
		b.WriteString(v.styles.Error.Render(v.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}

// Answers returns the answers given so far.
func (v *View) Answers() form.Answers {
	return v.answers
}

// ErrMessage returns the validation message for the current field.
func (v *View) ErrMessage() string {
	return v.errMsg
}

// Done reports whether every field has been answered.
func (v *View) Done() bool {
	return v.done
}
