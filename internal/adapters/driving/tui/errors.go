package tui

import "errors"

// ErrMissingAuthService is returned when the auth service is not provided.
var ErrMissingAuthService = errors.New("tui: auth service is required")

// ErrMissingUserService is returned when the user service is not provided.
var ErrMissingUserService = errors.New("tui: user service is required")

// ErrMissingOnboardingService is returned when the onboarding service is not provided.
var ErrMissingOnboardingService = errors.New("tui: onboarding service is required")
