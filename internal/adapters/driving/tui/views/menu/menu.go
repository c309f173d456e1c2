// Package menu provides the navigation menu views for the TUI.
package menu

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/styles"
)

// NotImplemented is shown for menu entries that have no feature behind them.
const NotImplemented = "Feature not implemented yet."

// Item represents a single menu option.
type Item struct {
	Label string
	View  messages.ViewType

	// Quit exits the app when selected.
	Quit bool

	// Notice is shown in the status bar instead of navigating.
	Notice string
}

// View represents a numbered menu.
type View struct {
	styles   *styles.Styles
	title    string
	items    []Item
	back     *messages.ViewType
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a menu. Esc navigates to back when it is non-nil.
func NewView(s *styles.Styles, title string, items []Item, back *messages.ViewType) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		title:  title,
		items:  items,
		back:   back,
		width:  80,
		height: 24,
	}
}

// NewMainView creates the main menu.
func NewMainView(s *styles.Styles) *View {
	return NewView(s, "Main Menu", []Item{
		{Label: "Onboarding", View: messages.ViewOnboardingMenu},
		{Label: "API ID (with customer Name)", Notice: NotImplemented},
		{Label: "Assets", Notice: NotImplemented},
		{Label: "Alerts", Notice: NotImplemented},
		{Label: "Exit", Quit: true},
	}, nil)
}

// NewOnboardingView creates the onboarding menu.
func NewOnboardingView(s *styles.Styles) *View {
	back := messages.ViewMenu
	return NewView(s, "Onboarding Menu", []Item{
		{Label: "Get List of Users", View: messages.ViewUsers},
		{Label: "Get Users and Roles", View: messages.ViewUsersRoles},
		{Label: "Onboard AWS Account", View: messages.ViewOnboardAWS},
		{Label: "Onboard AWS Account for MSP", View: messages.ViewOnboardMSP},
		{Label: "Back to Main Menu", View: messages.ViewMenu},
	}, &back)
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			return v, v.choose(v.selected)

		case "esc":
			if v.back != nil {
				view := *v.back
				return v, func() tea.Msg { return messages.ViewChanged{View: view} }
			}
			return v, nil

		case "q":
			return v, tea.Quit
		}

		// Numbered choice, as printed next to each entry.
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(v.items) {
			v.selected = n - 1
			return v, v.choose(v.selected)
		}
	}

	return v, nil
}

func (v *View) choose(idx int) tea.Cmd {
	item := v.items[idx]
	switch {
	case item.Quit:
		return tea.Quit
	case item.Notice != "":
		return func() tea.Msg { return messages.Notice{Text: item.Notice} }
	default:
		return func() tea.Msg { return messages.ViewChanged{View: item.View} }
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Pileus"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render(v.title + ":"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}
		b.WriteString(cursor + style.Render(strconv.Itoa(i+1)+". "+item.Label))
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}
