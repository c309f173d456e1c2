package onboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/form"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// answer types text and presses enter.
func answer(v *View, text string) tea.Cmd {
	if text != "" {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestView_AWS_Submits(t *testing.T) {
	v := NewView(nil)
	v.Reset(ModeAWS, "")

	assert.Nil(t, answer(v, "123456789012"))
	cmd := answer(v, "prod")

	require.NotNil(t, cmd)
	assert.True(t, v.Done())
	msg, ok := cmd().(messages.OnboardingSubmitted)
	require.True(t, ok)
	require.NotNil(t, msg.AWS)
	assert.Nil(t, msg.MSP)
	assert.Equal(t, domain.AWSOnboarding{AccountID: "123456789012", AccountName: "prod"}, *msg.AWS)
	assert.Contains(t, v.View(), "Submitting...")
}

func TestView_RejectsEmptyRequired(t *testing.T) {
	v := NewView(nil)
	v.Reset(ModeAWS, "")

	cmd := answer(v, "")

	assert.Nil(t, cmd)
	assert.Contains(t, v.ErrMessage(), "input cannot be empty")
	assert.Contains(t, v.View(), "input cannot be empty")
	assert.Empty(t, v.Answers())
}

func TestView_MSP_Submits(t *testing.T) {
	v := NewView(nil)
	v.Reset(ModeMSP, "eu-west-1")
	assert.Contains(t, v.View(), "Step 1 of 11")

	answer(v, "123")
	answer(v, "prod")
	assert.Contains(t, v.View(), "cur-123")

	// Bucket name and region keep their defaults.
	answer(v, "")
	answer(v, "")

	assert.Nil(t, answer(v, "2"), "account type must be 1 or 0")
	assert.Contains(t, v.ErrMessage(), "enter one of 1, 0")
	answer(v, "1")

	answer(v, "")
	answer(v, "Customer A")
	answer(v, "1")
	assert.Nil(t, answer(v, ""), "domain required when self managed")
	answer(v, "a.example")
	answer(v, "0")
	cmd := answer(v, "")

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.OnboardingSubmitted)
	require.True(t, ok)
	require.NotNil(t, msg.MSP)
	assert.Equal(t, domain.AccountTypeDedicated, msg.MSP.AccountType)
	assert.Equal(t, "Customer A", msg.MSP.ResellerCustomerName)
	assert.Equal(t, "a.example", msg.MSP.ResellerCustomerDomain)
	assert.True(t, msg.MSP.CustomerSelfManaged)
	assert.Empty(t, msg.MSP.BucketRegion)
	assert.Equal(t, "1", v.Answers()[form.KeySelfManaged])
}

func TestView_EscGoesBack(t *testing.T) {
	v := NewView(nil)
	v.Reset(ModeAWS, "")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewOnboardingMenu}, cmd())
}

func TestView_ResetClearsState(t *testing.T) {
	v := NewView(nil)
	v.Reset(ModeAWS, "")
	answer(v, "123")

	v.Reset(ModeMSP, "")

	assert.Empty(t, v.Answers())
	assert.False(t, v.Done())
	assert.Contains(t, v.View(), "Onboard AWS Account for MSP")
}

func TestView_EnterAfterDoneIsIgnored(t *testing.T) {
	v := NewView(nil)
	v.Reset(ModeAWS, "")
	answer(v, "1")
	answer(v, "a")

	assert.Nil(t, answer(v, ""))
}
