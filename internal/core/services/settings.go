package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAuthURL           = "api.auth_url"
	keyBaseURL           = "api.base_url"
	keyBaseURLV2         = "api.base_url_v2"
	keyTimeoutSeconds    = "api.timeout_seconds"
	keyRequestsPerSecond = "api.requests_per_second"
	keyAccountKey        = "account.key"
	keyAccountDivision   = "account.division"
	keyAccountName       = "account.name"
	keyDefaultRegion     = "onboarding.default_region"
	keyOutputDir         = "onboarding.output_dir"
	keyLoggingDir        = "logging.dir"
	keyHistoryEnabled    = "history.enabled"
)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
)

// settingKeys lists every settable key in display order.
var settingKeys = []struct {
	key  string
	kind settingKind
}{
	{keyAuthURL, kindString},
	{keyBaseURL, kindString},
	{keyBaseURLV2, kindString},
	{keyTimeoutSeconds, kindInt},
	{keyRequestsPerSecond, kindFloat},
	{keyAccountKey, kindString},
	{keyAccountDivision, kindInt},
	{keyAccountName, kindString},
	{keyDefaultRegion, kindString},
	{keyOutputDir, kindString},
	{keyLoggingDir, kindString},
	{keyHistoryEnabled, kindBool},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Keys that are missing or hold invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		API: domain.APISettings{
			AuthURL:           s.getString(keyAuthURL, defaults.API.AuthURL),
			BaseURL:           s.getString(keyBaseURL, defaults.API.BaseURL),
			BaseURLV2:         s.getString(keyBaseURLV2, defaults.API.BaseURLV2),
			TimeoutSeconds:    s.getPositiveInt(keyTimeoutSeconds, defaults.API.TimeoutSeconds),
			RequestsPerSecond: s.getPositiveFloat(keyRequestsPerSecond, defaults.API.RequestsPerSecond),
		},
		Account: domain.AccountSettings{
			Key:      s.configStore.GetString(keyAccountKey),
			Division: s.configStore.GetInt(keyAccountDivision),
			Name:     s.configStore.GetString(keyAccountName),
		},
		Onboarding: domain.OnboardingSettings{
			DefaultRegion: s.getString(keyDefaultRegion, defaults.Onboarding.DefaultRegion),
			OutputDir:     s.getString(keyOutputDir, defaults.Onboarding.OutputDir),
		},
		Logging: domain.LoggingSettings{
			Dir: s.getString(keyLoggingDir, defaults.Logging.Dir),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAuthURL, settings.API.AuthURL},
		{keyBaseURL, settings.API.BaseURL},
		{keyBaseURLV2, settings.API.BaseURLV2},
		{keyTimeoutSeconds, settings.API.TimeoutSeconds},
		{keyRequestsPerSecond, settings.API.RequestsPerSecond},
		{keyAccountKey, settings.Account.Key},
		{keyAccountDivision, settings.Account.Division},
		{keyAccountName, settings.Account.Name},
		{keyDefaultRegion, settings.Onboarding.DefaultRegion},
		{keyOutputDir, settings.Onboarding.OutputDir},
		{keyLoggingDir, settings.Logging.Dir},
		{keyHistoryEnabled, settings.History.Enabled},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	kind, ok := lookupKind(key)
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	value = strings.TrimSpace(value)
	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, domain.ErrInvalidInput)
		}
		if n < 0 || (key == keyTimeoutSeconds && n == 0) {
			return fmt.Errorf("%s must be positive: %w", key, domain.ErrInvalidInput)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s must be a positive number: %w", key, domain.ErrInvalidInput)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, domain.ErrInvalidInput)
		}
		parsed = b
	default:
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns all settable keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.key
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func lookupKind(key string) (settingKind, bool) {
	for _, k := range settingKeys {
		if k.key == key {
			return k.kind, true
		}
	}
	return 0, false
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	if v := s.configStore.GetFloat(key); v > 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
