// Package viewer provides a scrollable JSON view for user listings.
package viewer

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/styles"
)

// chromeHeight is the space taken by the title, border and status bar.
const chromeHeight = 7

// View shows pretty-printed JSON in a viewport.
type View struct {
	styles   *styles.Styles
	viewport viewport.Model
	back     messages.ViewType
	title    string
	loading  bool
	err      error
	width    int
	height   int
}

// NewView creates a viewer that returns to back on esc.
func NewView(s *styles.Styles, back messages.ViewType) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		viewport: viewport.New(80, 24-chromeHeight),
		back:     back,
		width:    80,
		height:   24,
	}
}

// Start clears the view and shows a loading message under title.
func (v *View) Start(title string) {
	v.title = title
	v.loading = true
	v.err = nil
	v.viewport.SetContent("")
	v.viewport.GotoTop()
}

// SetJSON shows raw indented by 4 spaces. Invalid JSON is shown as is.
func (v *View) SetJSON(raw []byte) {
	v.loading = false
	v.err = nil
	v.viewport.SetContent(IndentJSON(raw))
	v.viewport.GotoTop()
}

// SetText shows plain text.
func (v *View) SetText(text string) {
	v.loading = false
	v.err = nil
	v.viewport.SetContent(text)
	v.viewport.GotoTop()
}

// SetError shows err instead of content.
func (v *View) SetError(err error) {
	v.loading = false
	v.err = err
}

// Err returns the error being shown.
func (v *View) Err() error {
	return v.err
}

// Loading reports whether content is still being fetched.
func (v *View) Loading() bool {
	return v.loading
}

// Update handles messages for the viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			back := v.back
			return v, func() tea.Msg { return messages.ViewChanged{View: back} }
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the viewer.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	default:
		b.WriteString(v.styles.Border.Render(v.viewport.View()))
	}
	b.WriteString("\n")

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = max(width-2, 10)
	v.viewport.Height = max(height-chromeHeight, 3)
}

// Content returns the text currently in the viewport.
func (v *View) Content() string {
	return v.viewport.View()
}

// IndentJSON re-indents raw with 4 spaces.
func IndentJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return string(raw)
	}
	return buf.String()
}
