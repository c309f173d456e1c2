package driving

import "github.com/custodia-labs/pileus-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses value for key and persists it.
	Set(key, value string) error

	// Keys returns all settable keys in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
