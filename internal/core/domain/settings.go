package domain

import "time"

// Default API endpoints.
const (
	DefaultAuthURL   = "https://tokenizer.mypileus.io/prod/credentials"
	DefaultBaseURL   = "https://api.mypileus.io/api/v1"
	DefaultBaseURLV2 = "https://api.mypileus.io/api/v2"
)

// APISettings configures the Pileus API client.
type APISettings struct {
	AuthURL           string
	BaseURL           string
	BaseURLV2         string
	TimeoutSeconds    int
	RequestsPerSecond float64
}

// Timeout returns the request timeout as a duration.
func (s APISettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// AccountSettings selects the account onboarding calls are scoped to.
// Either Key (with Division) or Name may be set. Key takes precedence.
type AccountSettings struct {
	Key      string
	Division int
	Name     string
}

// Scope returns the configured account scope.
func (s AccountSettings) Scope() AccountScope {
	return AccountScope{AccountKey: s.Key, DivisionID: s.Division}
}

// OnboardingSettings configures onboarding defaults.
type OnboardingSettings struct {
	DefaultRegion string
	OutputDir     string
}

// LoggingSettings configures the per-run log file.
type LoggingSettings struct {
	Dir string
}

// HistorySettings configures the onboarding history.
type HistorySettings struct {
	Enabled bool
}

// AppSettings holds all user-configurable application settings.
type AppSettings struct {
	API        APISettings
	Account    AccountSettings
	Onboarding OnboardingSettings
	Logging    LoggingSettings
	History    HistorySettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			AuthURL:           DefaultAuthURL,
			BaseURL:           DefaultBaseURL,
			BaseURLV2:         DefaultBaseURLV2,
			TimeoutSeconds:    100,
			RequestsPerSecond: 2,
		},
		Onboarding: OnboardingSettings{
			DefaultRegion: DefaultBucketRegion,
			OutputDir:     ".",
		},
		Logging: LoggingSettings{
			Dir: ".",
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}
