package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_NilStoreReturnsDefaults(t *testing.T) {
	service := NewSettingsService(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 100, settings.API.TimeoutSeconds)
	assert.ErrorIs(t, service.Set("account.key", "1"), domain.ErrNotImplemented)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "https://staging.example/api/v1")
	_ = store.Set("api.timeout_seconds", 30)
	_ = store.Set("account.key", "12345")
	_ = store.Set("account.division", 3)
	_ = store.Set("history.enabled", false)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "https://staging.example/api/v1", settings.API.BaseURL)
	assert.Equal(t, 30, settings.API.TimeoutSeconds)
	assert.Equal(t, "12345", settings.Account.Key)
	assert.Equal(t, 3, settings.Account.Division)
	assert.False(t, settings.History.Enabled)
	assert.Equal(t, domain.DefaultAuthURL, settings.API.AuthURL)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.timeout_seconds", -5)
	_ = store.Set("api.requests_per_second", "fast")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.API.TimeoutSeconds, settings.API.TimeoutSeconds)
	assert.InDelta(t, defaults.API.RequestsPerSecond, settings.API.RequestsPerSecond, 0.0001)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Account.Name = "Prod"
	settings.Onboarding.DefaultRegion = "eu-west-1"
	settings.History.Enabled = false
	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_Nil(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{
			name: "string", key: "onboarding.default_region", value: " eu-central-1 ",
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, "eu-central-1", s.Onboarding.DefaultRegion)
			},
		},
		{
			name: "int", key: "account.division", value: "7",
			check: func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, 7, s.Account.Division) },
		},
		{
			name: "float", key: "api.requests_per_second", value: "0.5",
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.InDelta(t, 0.5, s.API.RequestsPerSecond, 0.0001)
			},
		},
		{
			name: "bool", key: "history.enabled", value: "false",
			check: func(t *testing.T, s *domain.AppSettings) { assert.False(t, s.History.Enabled) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"unknown.key", "x"},
		{"api.timeout_seconds", "abc"},
		{"api.timeout_seconds", "0"},
		{"account.division", "-1"},
		{"api.requests_per_second", "0"},
		{"history.enabled", "maybe"},
	}

	service := NewSettingsService(memory.NewConfigStore())
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(nil).Keys()

	assert.Len(t, keys, 12)
	assert.Equal(t, "api.auth_url", keys[0])
	assert.Contains(t, keys, "account.name")
	assert.Contains(t, keys, "history.enabled")
}
