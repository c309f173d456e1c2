// Package mcp provides an MCP (Model Context Protocol) server adapter for Pileus.
// It lets AI assistants list users and onboard AWS accounts through the CLI's services.
package mcp

import "errors"

// ErrMissingUserService is returned when the user service is not provided.
var ErrMissingUserService = errors.New("mcp: user service is required")

// ErrMissingOnboardingService is returned when the onboarding service is not provided.
var ErrMissingOnboardingService = errors.New("mcp: onboarding service is required")
