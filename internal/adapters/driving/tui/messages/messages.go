// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"encoding/json"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewOnboardingMenu is the onboarding sub-menu.
	ViewOnboardingMenu
	// ViewUsers shows the user list.
	ViewUsers
	// ViewUsersRoles shows the user list with roles.
	ViewUsersRoles
	// ViewOnboardAWS is the plain onboarding form.
	ViewOnboardAWS
	// ViewOnboardMSP is the MSP onboarding form.
	ViewOnboardMSP
	// ViewResult shows the outcome of an onboarding request.
	ViewResult
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewOnboardingMenu:
		return "onboarding_menu"
	case ViewUsers:
		return "users"
	case ViewUsersRoles:
		return "users_roles"
	case ViewOnboardAWS:
		return "onboard_aws"
	case ViewOnboardMSP:
		return "onboard_msp"
	case ViewResult:
		return "result"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Notice is a one-line message for the status bar.
type Notice struct {
	Text string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// AuthCompleted carries the result of the start-up login.
type AuthCompleted struct {
	Session *domain.Session
	Err     error
}

// UsersLoaded carries a user listing.
type UsersLoaded struct {
	WithRoles bool
	JSON      json.RawMessage
	Err       error
}

// OnboardingSubmitted carries a checked onboarding request to the app.
// Exactly one of AWS or MSP is set.
type OnboardingSubmitted struct {
	AWS *domain.AWSOnboarding
	MSP *domain.MSPOnboarding
}

// OnboardingCompleted carries the outcome of an onboarding request.
type OnboardingCompleted struct {
	Result *domain.OnboardingResult
	Err    error
}

// FolderOpened signals the script folder was handed to the file browser.
type FolderOpened struct {
	Path string
	Err  error
}
