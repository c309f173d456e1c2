// Package tui provides an interactive terminal user interface for pileus.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auth logs in on start.
	Auth driving.AuthService

	// Users reads Pileus users.
	Users driving.UserService

	// Onboarding onboards AWS accounts.
	Onboarding driving.OnboardingService

	// Settings supplies the default bucket region. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	auth driving.AuthService,
	users driving.UserService,
	onboarding driving.OnboardingService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Auth:       auth,
		Users:      users,
		Onboarding: onboarding,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	if p.Users == nil {
		return ErrMissingUserService
	}
	if p.Onboarding == nil {
		return ErrMissingOnboardingService
	}
	return nil
}
