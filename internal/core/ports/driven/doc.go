// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PileusAPI: Authentication, user queries and onboarding calls
//   - CredentialsStore: config.ini access
//   - ConfigStore: settings.toml access
//   - OnboardingStore: Onboarding history persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ScriptStore: Saves setup scripts. Without it, scripts are only returned.
//   - FolderOpener: Opens a folder in the platform file browser.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
