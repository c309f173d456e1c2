// Package domain defines the core business entities for the Pileus CLI.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Credentials: The Pileus username/password pair from config.ini
//   - Session: An authenticated token and its API keys
//   - AWSOnboarding / MSPOnboarding: Onboarding requests and payload rules
//   - OnboardingRecord: A history entry for an onboarding attempt
//   - AppSettings: Behavioural settings with defaults
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
