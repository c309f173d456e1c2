// Package script saves setup scripts returned by onboarding calls and opens
// their folders in the platform file browser.
package script
