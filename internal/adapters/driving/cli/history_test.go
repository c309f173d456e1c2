package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

func TestHistory_Table(t *testing.T) {
	svc, restore := setupTestServices()
	defer restore()
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	svc.onboarding.records = []domain.OnboardingRecord{
		{
			ID: "b", Mode: domain.OnboardingModeMSP, AccountID: "222", AccountName: "staging",
			Status: domain.OnboardingFailed, Error: "status 403", CreatedAt: now,
		},
		{
			ID: "a", Mode: domain.OnboardingModeAWS, AccountID: "111", AccountName: "prod",
			Status: domain.OnboardingSucceeded, ScriptPath: "prod_111/setup.sh", CreatedAt: now.Add(-time.Hour),
		},
	}

	out, err := execute("", "history")

	require.NoError(t, err)
	assert.Equal(t, 20, svc.onboarding.lastLimit)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "CREATED")
	assert.Contains(t, lines[1], "2024-03-09 14:05:07")
	assert.Contains(t, lines[1], "msp")
	assert.Contains(t, lines[1], "status 403")
	assert.Contains(t, lines[2], "prod_111/setup.sh")
}

func TestHistory_Limit(t *testing.T) {
	svc, restore := setupTestServices()
	defer restore()

	_, err := execute("", "history", "--limit", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, svc.onboarding.lastLimit)
}

func TestHistory_Empty(t *testing.T) {
	_, restore := setupTestServices()
	defer restore()

	out, err := execute("", "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No onboarding attempts recorded.")
}

func TestHistory_ErrorsWithoutService(t *testing.T) {
	_, restore := setupTestServices()
	defer restore()
	onboardingService = nil

	_, err := execute("", "history")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "onboarding service not configured")
}
