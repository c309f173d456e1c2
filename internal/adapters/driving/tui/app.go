package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/views/onboard"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/views/result"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/views/viewer"
	"github.com/custodia-labs/pileus-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	mainMenu       *menu.View
	onboardingMenu *menu.View
	usersView      *viewer.View
	formView       *onboard.View
	resultView     *result.View
	statusBar      *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// authErr holds the start-up login failure, if any.
	authErr error

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s)
	bar.SetHints(km.MenuHelp())
	bar.SetState(status.StateWorking, "Authenticating...")

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		mainMenu:       menu.NewMainView(s),
		onboardingMenu: menu.NewOnboardingView(s),
		usersView:      viewer.NewView(s, messages.ViewOnboardingMenu),
		formView:       onboard.NewView(s),
		resultView:     result.NewView(s, ports.Onboarding),
		statusBar:      bar,
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It logs in as soon as the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("Pileus"),
		a.authenticate(),
	)
}

func (a *App) authenticate() tea.Cmd {
	auth := a.ports.Auth
	ctx := a.ctx
	return func() tea.Msg {
		session, err := auth.Authenticate(ctx)
		return messages.AuthCompleted{Session: session, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.handleKey(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.Notice:
		a.statusBar.SetState(status.StateNotice, msg.Text)
		return a, nil

	case messages.AuthCompleted:
		if msg.Err != nil {
			a.authErr = msg.Err
			a.statusBar.SetState(status.StateError, "Authentication failed: "+msg.Err.Error())
			return a, nil
		}
		a.authErr = nil
		a.statusBar.SetState(status.StateReady, "Authentication successful.")
		return a, nil

	case messages.UsersLoaded:
		if msg.Err != nil {
			a.usersView.SetError(msg.Err)
			a.setError(msg.Err)
			return a, nil
		}
		a.usersView.SetJSON(msg.JSON)
		a.statusBar.Clear()
		return a, nil

	case messages.OnboardingSubmitted:
		a.statusBar.SetState(status.StateWorking, "Onboarding account...")
		return a, a.onboard(msg)

	case messages.OnboardingCompleted:
		a.resultView.SetResult(msg.Result, msg.Err)
		a.currentView = messages.ViewResult
		a.statusBar.SetHints(a.keymap.ResultHelp(a.resultView.HasScript()))
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.statusBar.SetState(status.StateReady, "Onboarding succeeded.")
		return a, nil

	case messages.FolderOpened:
		if msg.Err != nil {
			a.statusBar.SetState(status.StateError, "Could not open folder: "+msg.Err.Error())
			return a, nil
		}
		a.statusBar.SetState(status.StateReady, "Opening folder: "+msg.Path)
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		if a.currentView == messages.ViewOnboardAWS || a.currentView == messages.ViewOnboardMSP {
			return a, a.switchTo(messages.ViewOnboardingMenu)
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink, viewport) to the active view.
	switch a.currentView {
	case messages.ViewUsers, messages.ViewUsersRoles:
		a.usersView, cmd = a.usersView.Update(msg)
	case messages.ViewOnboardAWS, messages.ViewOnboardMSP:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewResult:
		a.resultView, cmd = a.resultView.Update(msg)
	case messages.ViewMenu, messages.ViewOnboardingMenu, messages.ViewHelp:
		// Menus only react to keys
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		if keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return nil
		}
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	case messages.ViewOnboardingMenu:
		a.onboardingMenu, cmd = a.onboardingMenu.Update(msg)
	case messages.ViewUsers, messages.ViewUsersRoles:
		a.usersView, cmd = a.usersView.Update(msg)
	case messages.ViewOnboardAWS, messages.ViewOnboardMSP:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewResult:
		a.resultView, cmd = a.resultView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keymap.Back) {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// switchTo activates view and starts whatever it needs.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view

	switch view {
	case messages.ViewMenu, messages.ViewOnboardingMenu:
		a.statusBar.SetHints(a.keymap.MenuHelp())
		if a.statusBar.State() == status.StateNotice {
			a.statusBar.Clear()
		}
		return nil

	case messages.ViewUsers, messages.ViewUsersRoles:
		withRoles := view == messages.ViewUsersRoles
		title := "Users"
		if withRoles {
			title = "Users and Roles"
		}
		a.usersView.Start(title)
		a.statusBar.SetHints(a.keymap.ViewerHelp())
		a.statusBar.SetState(status.StateWorking, "Loading users...")
		return a.loadUsers(withRoles)

	case messages.ViewOnboardAWS:
		a.formView.Reset(onboard.ModeAWS, a.defaultRegion())
		a.statusBar.SetHints(nil)
		return a.formView.Init()

	case messages.ViewOnboardMSP:
		a.formView.Reset(onboard.ModeMSP, a.defaultRegion())
		a.statusBar.SetHints(nil)
		return a.formView.Init()

	case messages.ViewResult, messages.ViewHelp:
		// Entered through their own messages
	}
	return nil
}

func (a *App) loadUsers(withRoles bool) tea.Cmd {
	users := a.ports.Users
	ctx := a.ctx
	return func() tea.Msg {
		if withRoles {
			raw, err := users.ListWithRoles(ctx)
			return messages.UsersLoaded{WithRoles: true, JSON: raw, Err: err}
		}
		raw, err := users.List(ctx)
		return messages.UsersLoaded{JSON: raw, Err: err}
	}
}

func (a *App) onboard(msg messages.OnboardingSubmitted) tea.Cmd {
	onboarding := a.ports.Onboarding
	ctx := a.ctx
	return func() tea.Msg {
		if msg.MSP != nil {
			res, err := onboarding.OnboardMSP(ctx, *msg.MSP)
			return messages.OnboardingCompleted{Result: res, Err: err}
		}
		if msg.AWS != nil {
			res, err := onboarding.OnboardAWS(ctx, *msg.AWS)
			return messages.OnboardingCompleted{Result: res, Err: err}
		}
		return messages.ErrorOccurred{Err: errors.New("empty onboarding request")}
	}
}

func (a *App) defaultRegion() string {
	if a.ports.Settings == nil {
		return ""
	}
	settings, err := a.ports.Settings.Get()
	if err != nil {
		logger.Warn("reading settings: %v", err)
		return ""
	}
	return settings.Onboarding.DefaultRegion
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError, err.Error())
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewOnboardingMenu:
		body = a.onboardingMenu.View()
	case messages.ViewUsers, messages.ViewUsersRoles:
		body = a.usersView.View()
	case messages.ViewOnboardAWS, messages.ViewOnboardMSP:
		body = a.formView.View()
	case messages.ViewResult:
		body = a.resultView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.mainMenu.View()
	}

	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menus:
  j/k, ↑/↓    Navigate options
  1-5         Choose an option by number
  enter       Select option
  q           Quit

Users:
  j/k, ↑/↓    Scroll

Onboarding:
  enter       Confirm the answer and go to the next question
  o           Open the folder of a saved setup script

[esc] back to menu`
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// AuthErr returns the start-up login failure, if any.
func (a *App) AuthErr() error {
	return a.authErr
}

// Status returns the status bar message.
func (a *App) Status() string {
	return a.statusBar.Message()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	bodyHeight := height - 1
	a.mainMenu.SetDimensions(width, bodyHeight)
	a.onboardingMenu.SetDimensions(width, bodyHeight)
	a.usersView.SetDimensions(width, bodyHeight)
	a.formView.SetDimensions(width, bodyHeight)
	a.resultView.SetDimensions(width, bodyHeight)
	a.statusBar.SetWidth(width)
}
