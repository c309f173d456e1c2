package mcp

import (
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Users reads Pileus users.
	Users driving.UserService

	// Onboarding onboards AWS accounts and reads the history.
	Onboarding driving.OnboardingService

	// Settings exposes the current settings as a resource. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Users == nil {
		return ErrMissingUserService
	}
	if p.Onboarding == nil {
		return ErrMissingOnboardingService
	}
	return nil
}
