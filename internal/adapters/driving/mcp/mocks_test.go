package mcp

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// mockUserService is a mock implementation of driving.UserService.
type mockUserService struct {
	users     json.RawMessage
	withRoles json.RawMessage
	err       error
}

func (m *mockUserService) List(_ context.Context) (json.RawMessage, error) {
	return m.users, m.err
}

func (m *mockUserService) ListWithRoles(_ context.Context) (json.RawMessage, error) {
	return m.withRoles, m.err
}

// mockOnboardingService is a mock implementation of driving.OnboardingService.
type mockOnboardingService struct {
	result    *domain.OnboardingResult
	records   []domain.OnboardingRecord
	err       error
	lastAWS   domain.AWSOnboarding
	lastMSP   domain.MSPOnboarding
	lastLimit int
}

func (m *mockOnboardingService) OnboardAWS(
	_ context.Context, req domain.AWSOnboarding,
) (*domain.OnboardingResult, error) {
	m.lastAWS = req
	return m.result, m.err
}

func (m *mockOnboardingService) OnboardMSP(
	_ context.Context, req domain.MSPOnboarding,
) (*domain.OnboardingResult, error) {
	m.lastMSP = req
	return m.result, m.err
}

func (m *mockOnboardingService) History(_ context.Context, limit int) ([]domain.OnboardingRecord, error) {
	m.lastLimit = limit
	return m.records, m.err
}

func (m *mockOnboardingService) OpenFolder(_ string) error {
	return domain.ErrNotImplemented
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return nil }

func (m *mockSettingsService) Set(_, _ string) error { return nil }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
